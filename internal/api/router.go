package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/legal-discovery/backend/internal/api/handlers"
	"github.com/legal-discovery/backend/internal/api/middleware"
	"github.com/legal-discovery/backend/internal/auth"
	"github.com/legal-discovery/backend/internal/config"
	"github.com/legal-discovery/backend/internal/db"
	"github.com/legal-discovery/backend/internal/job"
	"github.com/legal-discovery/backend/internal/scribe"
	"github.com/legal-discovery/backend/internal/session"
)

func NewRouter(database *db.Database, jwtService *auth.JWTService, cfg *config.Config,
	jobQueue *job.JobQueue, sessions *session.Store, scribeService *scribe.Service) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(middleware.CORSHandler(cfg.CORSOrigins)))

	// Handlers
	authHandler := handlers.NewAuthHandler(database, jwtService)
	sessionHandler := handlers.NewSessionHandler(sessions)
	transcribeHandler := handlers.NewTranscribeHandler(scribeService, jobQueue, sessions,
		cfg.UploadPath, cfg.MaxUploadBytes, cfg.DefaultLang)
	jobHandler := handlers.NewJobHandler(jobQueue)
	exportHandler := handlers.NewExportHandler(sessions)
	settingsHandler := handlers.NewSettingsHandler(database)
	filesHandler := handlers.NewFilesHandler(cfg.UploadPath)

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Auth (public, rate limited)
		r.With(loginLimiter.Handler, middleware.MaxBodySize(4<<10)).
			Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))

			// Auth
			r.Get("/auth/me", authHandler.Me)

			// Sessions
			r.Post("/sessions", sessionHandler.Create)
			r.Get("/sessions/{id}", sessionHandler.Get)
			r.Delete("/sessions/{id}", sessionHandler.Delete)
			r.Get("/sessions/{id}/export/{format}", exportHandler.Download)

			// Transcription
			r.Post("/transcribe", transcribeHandler.Upload)
			r.Get("/engines", transcribeHandler.Engines)

			// Jobs
			r.Get("/jobs", jobHandler.ListJobs)
			r.Get("/jobs/{id}", jobHandler.GetJob)
			r.Post("/jobs/{id}/retry", jobHandler.RetryJob)
			r.Delete("/jobs/{id}", jobHandler.CancelJob)

			// Uploads
			r.Get("/uploads", filesHandler.ListUploads)

			// Settings (admin only)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Get("/settings", settingsHandler.GetSettings)
				r.With(middleware.MaxBodySize(64 << 10)).
					Put("/settings", settingsHandler.UpdateSettings)
			})
		})
	})

	return r
}
