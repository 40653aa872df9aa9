package middleware

import (
	"context"
	"net/http"
	"strings"

	credkit "github.com/credkit/credkit"
)

type userContextKey struct{}

// UserFromContext returns the user resolved by Guard for this request.
func UserFromContext(ctx context.Context) (*credkit.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*credkit.User)
	return user, ok
}

// Guard returns middleware that requires a valid access token on the
// Authorization header and attaches the resolved user to the request
// context.
func Guard(service *credkit.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if service == nil {
				WriteError(w, credkit.ErrServiceNotReady)
				return
			}

			accessToken, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				WriteError(w, credkit.ErrTokenInvalid)
				return
			}

			user, err := service.Authenticate(r.Context(), accessToken)
			if err != nil {
				WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	accessToken := value[len(bearer):]
	if accessToken == "" {
		return "", false
	}

	return accessToken, true
}
