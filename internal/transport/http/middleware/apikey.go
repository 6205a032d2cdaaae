package middleware

import (
	"net/http"

	"github.com/baechuer/account-gateway/internal/domain"
	"github.com/baechuer/account-gateway/internal/logger"
	appCtx "github.com/baechuer/account-gateway/internal/pkg/context"
	"github.com/baechuer/account-gateway/internal/transport/http/response"
)

const QueryAPIKey = "api-key"

type KeyAuthorizer interface {
	Authorize(presented string) (string, error)
}

// APIKey runs the gate before anything mounted below it, including the
// not-found fallback. A repeated api-key parameter is never a valid key.
func APIKey(gate KeyAuthorizer) func(http.Handler) http.Handler {
	if gate == nil {
		panic("APIKey: nil gate")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var key string
			var err error
			vals := r.URL.Query()[QueryAPIKey]
			switch len(vals) {
			case 0:
				key, err = gate.Authorize("")
			case 1:
				key, err = gate.Authorize(vals[0])
			default:
				err = domain.ErrInvalidAPIKey()
			}
			if err != nil {
				logger.WithCtx(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("api key rejected")
				response.Err(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(appCtx.WithAPIKey(r.Context(), key)))
		})
	}
}
