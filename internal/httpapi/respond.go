package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"orgauth.app/internal/account"
	"orgauth.app/internal/audit"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeSuccess emits the API success envelope.
func writeSuccess(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, map[string]any{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// writeStatusError emits the client-error envelope used by the auth and
// organisation endpoints.
func writeStatusError(w http.ResponseWriter, code int, status, message string) {
	writeJSON(w, code, map[string]any{
		"status":     status,
		"message":    message,
		"statusCode": code,
	})
}

// writeValidationErrors emits the 422 field-error list.
func writeValidationErrors(w http.ResponseWriter, fields []account.FieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"errors": fields,
	})
}

// writeError is the fallback error shape for infrastructure-level failures.
func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := audit.RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// decodeJSON parses the request body. The body cap is applied upstream by the
// MaxBodyBytes middleware.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

// handleAccountError translates account-layer errors into the API's error
// shapes.
func handleAccountError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationErrors(w, verr.Fields)
	case errors.Is(err, account.ErrUnauthorized):
		writeStatusError(w, http.StatusUnauthorized, "Bad request", "Authentication failed")
	case errors.Is(err, account.ErrNotFound):
		writeStatusError(w, http.StatusNotFound, "Not found", "resource not found")
	case errors.Is(err, account.ErrForbidden):
		writeStatusError(w, http.StatusForbidden, "Forbidden", "access denied")
	case errors.Is(err, account.ErrInvalidInput):
		writeStatusError(w, http.StatusBadRequest, "Bad request", err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
