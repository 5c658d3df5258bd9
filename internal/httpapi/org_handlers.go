package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"orgauth.app/internal/account"
	"orgauth.app/internal/audit"
	"orgauth.app/internal/token"
)

type createOrganisationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type addMemberRequest struct {
	UserID string `json:"userId"`
}

func (a *API) handleOrganisations(w http.ResponseWriter, r *http.Request) {
	callerID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		writeStatusError(w, http.StatusUnauthorized, "Bad request", "Authentication failed")
		return
	}

	switch r.Method {
	case http.MethodGet:
		orgs, err := a.accounts.ListOrganisations(r.Context(), callerID)
		if err != nil {
			handleAccountError(w, r, err)
			return
		}
		if orgs == nil {
			orgs = []*account.Organisation{}
		}
		writeSuccess(w, http.StatusOK, "Organisations retrieved", map[string]any{
			"organisations": orgs,
		})
	case http.MethodPost:
		var req createOrganisationRequest
		if err := decodeJSON(r, &req); err != nil {
			writeStatusError(w, http.StatusBadRequest, "Bad request", err.Error())
			return
		}
		org, err := a.accounts.CreateOrganisation(r.Context(), callerID, req.Name, req.Description)
		if err != nil {
			handleAccountError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "org.created", map[string]any{
			"org_id": org.OrgID,
			"name":   org.Name,
		})
		w.Header().Set("Location", fmt.Sprintf("/api/organisations/%s", org.OrgID))
		writeSuccess(w, http.StatusCreated, "Organisation created successfully", org)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleOrganisationScoped(w http.ResponseWriter, r *http.Request) {
	callerID, ok := token.UserIDFromContext(r.Context())
	if !ok {
		writeStatusError(w, http.StatusUnauthorized, "Bad request", "Authentication failed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/organisations/")
	path = strings.Trim(path, "/")
	if path == "" {
		writeStatusError(w, http.StatusNotFound, "Not found", "resource not found")
		return
	}
	parts := strings.Split(path, "/")
	switch {
	case len(parts) == 1:
		a.handleOrganisation(w, r, callerID, parts[0])
	case len(parts) == 2 && parts[1] == "users":
		a.handleOrganisationMembers(w, r, callerID, parts[0])
	default:
		writeStatusError(w, http.StatusNotFound, "Not found", "resource not found")
	}
}

func (a *API) handleOrganisation(w http.ResponseWriter, r *http.Request, callerID, orgID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	org, err := a.accounts.GetOrganisation(r.Context(), callerID, orgID)
	if err != nil {
		handleAccountError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Organisation retrieved", org)
}

func (a *API) handleOrganisationMembers(w http.ResponseWriter, r *http.Request, callerID, orgID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeStatusError(w, http.StatusBadRequest, "Bad request", err.Error())
		return
	}
	if err := a.accounts.AddMember(r.Context(), callerID, orgID, req.UserID); err != nil {
		handleAccountError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "org.member.added", map[string]any{
		"org_id":  orgID,
		"user_id": req.UserID,
	})
	writeSuccess(w, http.StatusOK, "User added to organisation successfully", nil)
}
