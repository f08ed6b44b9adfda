package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/logger"
)

// RouterConfig carries everything the router mounts.
type RouterConfig struct {
	Events  *EventHandler
	Quests  *QuestHandler
	Metrics http.Handler
	Log     *logger.Logger
	// WebDir is served at the root when non-empty.
	WebDir string
	// AdminToken guards endpoints that expose registrant data.
	AdminToken string
}

// NewRouter builds the full HTTP surface.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(cfg.Log))
	r.Use(CORS)

	r.Get("/health", HealthCheck)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Get("/countdown", cfg.Events.Countdown)
	r.With(RequireAdmin(cfg.AdminToken)).Get("/registrations", cfg.Events.ListRegistrations)
	r.Route("/events", func(r chi.Router) {
		r.Get("/", cfg.Events.ListEvents)
		r.Get("/{id}", cfg.Events.GetEvent)
	})

	r.Route("/quests", func(r chi.Router) {
		r.Post("/", cfg.Quests.CreateSession)
		r.Get("/{id}", cfg.Quests.GetSession)
		r.Post("/{id}/submit", cfg.Quests.Submit)
		r.Post("/{id}/reset", cfg.Quests.Reset)
		r.Post("/{id}/finalize", cfg.Quests.Finalize)
	})

	if cfg.WebDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))
	}
	return r
}
