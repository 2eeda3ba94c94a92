package security

import (
	"net/http"

	"github.com/alaminute/backend-prints/internal/common"
)

// BodyLimit caps request payload sizes. Order and product payloads are small;
// anything larger is a client bug or abuse.
type BodyLimit struct {
	Max int64
}

// Middleware rejects oversized requests with HTTP 413 and wraps the body so
// handlers reading past the limit fail instead of blocking.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.Max <= 0 || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > b.Max {
			common.JSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large", nil)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, b.Max)
		next.ServeHTTP(w, r)
	})
}
