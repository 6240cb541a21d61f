package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vocadrill/backend/internal/config"
	"github.com/vocadrill/backend/internal/transport/middleware"
)

// RouterConfig carries the cross-cutting pieces the router wires around
// the handlers.
type RouterConfig struct {
	Logger *slog.Logger
	CORS   config.CORSConfig
	Auth   middleware.Middleware
}

// NewRouter assembles the full HTTP surface: health probes stay public,
// everything under /api/study goes through the auth middleware.
func NewRouter(study *StudyHandler, health *HealthHandler, rc RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(rc.Logger))
	r.Use(middleware.Logger(rc.Logger))
	r.Use(middleware.CORS(rc.CORS))

	r.Get("/health", health.Health)
	r.Get("/health/live", health.Live)
	r.Get("/health/ready", health.Ready)

	r.Route("/api/study", func(r chi.Router) {
		r.Use(rc.Auth)
		r.Post("/review", study.Review)
		r.Post("/quiz", study.Quiz)
		r.Get("/session", study.Session)
		r.Post("/entries", study.Ensure)
		r.Post("/weights/evaluate", study.EvaluateWeights)
		r.Put("/weights", study.SaveWeights)
		r.Get("/dashboard", study.Dashboard)
	})

	return r
}
