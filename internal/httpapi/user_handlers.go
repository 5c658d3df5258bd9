package httpapi

import (
	"net/http"
	"strings"

	"orgauth.app/internal/token"
)

func (a *API) handleUserResource(w http.ResponseWriter, r *http.Request) {
	callerID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		writeStatusError(w, http.StatusUnauthorized, "Bad request", "Authentication failed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/users/")
	path = strings.Trim(path, "/")
	if path == "" || strings.Contains(path, "/") {
		writeStatusError(w, http.StatusNotFound, "Not found", "resource not found")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	user, err := a.accounts.GetUser(r.Context(), callerID, path)
	if err != nil {
		handleAccountError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "User retrieved", user)
}
