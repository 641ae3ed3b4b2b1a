package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shastore/shastore/internal/logging"
)

// NewRouter assembles the chi router: request logging and metrics wrap
// every route, /metrics is served by Prometheus directly.
func NewRouter(logger logging.Logger, h *Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(RequestLogger(logger))
	router.Use(Metrics())

	router.Get("/", h.Root)
	router.Post("/hash/text/", h.HashText)
	router.Post("/hash/file/", h.HashFile)
	router.Post("/hash/check/", h.CheckFile)
	router.Get("/hashes/", h.ListHashes)
	router.Post("/auth/register", h.Register)
	router.Post("/auth/login", h.Login)
	router.Get("/ws/feed", h.Feed)
	router.Handle("/metrics", promhttp.Handler())

	return router
}
