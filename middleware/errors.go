package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	credkit "github.com/credkit/credkit"
)

// StatusForError maps a service error to the HTTP status and message the
// boundary should expose. Specific errors are checked before the sentinels
// they wrap, so ErrInvalidEmail surfaces its own message rather than the
// generic credential one.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, credkit.ErrInvalidEmail):
		return http.StatusUnauthorized, "Invalid email"
	case errors.Is(err, credkit.ErrInvalidPassword):
		return http.StatusUnauthorized, "Invalid password"
	case errors.Is(err, credkit.ErrEmailNotConfirmed):
		return http.StatusUnauthorized, "Email not confirmed"
	case errors.Is(err, credkit.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, credkit.ErrTokenExpired),
		errors.Is(err, credkit.ErrTokenInvalid):
		return http.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, credkit.ErrAccountExists):
		return http.StatusConflict, "Account already exists"
	case errors.Is(err, credkit.ErrVerification):
		return http.StatusBadRequest, "Verification error"
	case errors.Is(err, credkit.ErrStoreUnavailable),
		errors.Is(err, credkit.ErrCacheUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// WriteError writes the mapped status and a JSON body {"detail": message}.
func WriteError(w http.ResponseWriter, err error) {
	status, message := StatusForError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
