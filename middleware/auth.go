// middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hashemm621/AssetVerse-Server/utils"
)

// Verifier is the identity collaborator: given a bearer credential it
// yields the authenticated principal email.
type Verifier interface {
	Verify(bearerCredential string) (string, error)
}

type contextKey string

const principalKey contextKey = "principalEmail"

// PrincipalEmail returns the verified identity set by Auth. Handlers use
// this, never a client-supplied field, as the acting principal for any
// self-scoped mutation.
func PrincipalEmail(r *http.Request) string {
	email, _ := r.Context().Value(principalKey).(string)
	return email
}

// Auth verifies the bearer token and stores the principal email in the
// request context.
func Auth(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized access")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			email, err := verifier.Verify(tokenString)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
