package security

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/alaminute/backend-prints/internal/common"
)

// AdminToken guards administrative routes with a static bearer token. An
// empty token disables the routes entirely rather than leaving them open.
type AdminToken struct {
	Token string
}

// Middleware rejects requests whose Authorization header does not carry the
// configured token. Comparison is constant-time.
func (a AdminToken) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.Token == "" {
			common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "admin access is not configured", nil)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "bearer token required", nil)
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(a.Token)) != 1 {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
