package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"intervai/internal/interview"
	"intervai/internal/store"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(
	db *store.DB,
	svc *interview.Service,
	archive *store.InterviewStore,
	apiKey string,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(db)
	interviewH := NewInterviewHandler(svc, archive)

	// Unauthenticated routes
	r.Get("/health", healthH.Health)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(apiKey))

		r.Route("/interview", func(r chi.Router) {
			r.Post("/start", interviewH.Start)
			r.Post("/question", interviewH.Question)
			r.Post("/followup", interviewH.Followup)
			r.Post("/answer", interviewH.Answer)
			r.Post("/end", interviewH.End)
			r.Post("/restore", interviewH.Restore)
			r.Get("/archive", interviewH.ListArchive)
			r.Get("/archive/{id}", interviewH.GetArchived)
		})
	})

	return r
}
