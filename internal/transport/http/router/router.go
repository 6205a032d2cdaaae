package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/account-gateway/internal/config"
	"github.com/baechuer/account-gateway/internal/transport/http/handlers"
	gwmw "github.com/baechuer/account-gateway/internal/transport/http/middleware"
	"github.com/baechuer/account-gateway/internal/transport/http/response"
)

func New(
	h *handlers.AccountsHandler,
	gate gwmw.KeyAuthorizer,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", gwmw.HeaderXRequestID},
		ExposedHeaders: []string{gwmw.HeaderXRequestID},
		MaxAge:         300,
	}))
	r.Use(gwmw.RequestID)
	r.Use(gwmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(gwmw.AccessLog)
	r.Use(gwmw.Metrics)

	if cfg.RLEnabled && cfg.RLLimit > 0 {
		r.Use(httprate.Limit(
			cfg.RLLimit,
			cfg.RLWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				response.Fail(w, http.StatusTooManyRequests, "too many requests")
			}),
		))
	}

	// Set before Route so the /api subrouter inherits them.
	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.NotFound)

	r.Get("/", handlers.Index)
	r.Get("/healthz", z.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(gwmw.APIKey(gate))
		r.Use(gwmw.BodyLimit(bodyLimit(cfg)))

		r.Route("/user_accounts", func(r chi.Router) {
			r.Get("/", h.List)
			r.Get("/count", h.Count)
			r.Get("/search", h.Search)
			r.Get("/{id}", h.Get)

			r.Post("/insert", h.Insert)
			r.Post("/update", h.Update)
			r.Post("/delete", h.Delete)
		})
	})

	return r
}

func bodyLimit(cfg *config.Config) int64 {
	if cfg.BodyLimit > 0 {
		return cfg.BodyLimit
	}
	return config.DefaultBodyLimit
}
