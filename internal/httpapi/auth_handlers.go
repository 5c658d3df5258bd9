package httpapi

import (
	"net/http"

	"orgauth.app/internal/account"
	"orgauth.app/internal/audit"
	"orgauth.app/internal/token"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authPayload struct {
	AccessToken string        `json:"accessToken"`
	User        *account.User `json:"user"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeStatusError(w, http.StatusBadRequest, "Bad request", err.Error())
		return
	}

	user, org, err := a.accounts.Register(r.Context(), account.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		handleAccountError(w, r, err)
		return
	}

	accessToken, _, err := token.Generate(user.UserID, user.Email, a.tokenTTL)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.user.registered", map[string]any{
		"user_id": user.UserID,
		"email":   user.Email,
		"org_id":  org.OrgID,
	})

	writeSuccess(w, http.StatusCreated, "Registration successful", authPayload{
		AccessToken: accessToken,
		User:        user,
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeStatusError(w, http.StatusBadRequest, "Bad request", err.Error())
		return
	}

	user, err := a.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleAccountError(w, r, err)
		return
	}

	accessToken, _, err := token.Generate(user.UserID, user.Email, a.tokenTTL)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.user.login", map[string]any{
		"user_id": user.UserID,
		"email":   user.Email,
	})

	writeSuccess(w, http.StatusOK, "Login successful", authPayload{
		AccessToken: accessToken,
		User:        user,
	})
}
