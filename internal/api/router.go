package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Verdict/internal/config"
	"github.com/MikeSquared-Agency/Verdict/internal/hermes"
	"github.com/MikeSquared-Agency/Verdict/internal/metrics"
	"github.com/MikeSquared-Agency/Verdict/internal/workspace"
)

func NewRouter(ws *workspace.Workspace, n *hermes.Notifier, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Server.RateLimit))

	ev := &evaluator{notifier: n, metrics: m, logger: logger}
	compute := NewComputeHandler(ev, cfg.Options())
	matrix := NewWorkspaceHandler(ws, ev, m)
	admin := NewAdminHandler(ws, n, m, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/compute", compute.Compute)

		r.Get("/criteria", matrix.ListCriteria)
		r.Post("/criteria", matrix.AddCriterion)
		r.Delete("/criteria/{id}", matrix.RemoveCriterion)

		r.Get("/alternatives", matrix.ListAlternatives)
		r.Post("/alternatives", matrix.AddAlternative)
		r.Delete("/alternatives/{id}", matrix.RemoveAlternative)
		r.Put("/alternatives/{id}/scores/{criterion_id}", matrix.SetScore)

		r.Get("/matrix", matrix.Export)
		r.Post("/calculate", matrix.Calculate)
		r.Get("/results", matrix.Results)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Post("/workspace/reset", admin.Reset)
			r.Post("/workspace/import", admin.Import)
		})
	})

	return r
}

func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
