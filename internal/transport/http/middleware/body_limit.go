package middleware

import (
	"net/http"

	"github.com/baechuer/account-gateway/internal/domain"
	"github.com/baechuer/account-gateway/internal/transport/http/response"
)

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over the
// cap is refused up front; chunked bodies fail when the reader crosses it.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		panic("BodyLimit: maxBytes must be positive")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				response.Err(w, r, domain.ErrBodyTooLarge())
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
