package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/legal-discovery/backend/internal/api"
	"github.com/legal-discovery/backend/internal/auth"
	"github.com/legal-discovery/backend/internal/config"
	"github.com/legal-discovery/backend/internal/db"
	"github.com/legal-discovery/backend/internal/job"
	"github.com/legal-discovery/backend/internal/scribe"
	"github.com/legal-discovery/backend/internal/session"
)

func main() {
	cfg := config.Load()

	// Ensure data directories exist
	os.MkdirAll(cfg.DataPath, 0755)
	os.MkdirAll(cfg.UploadPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// In-memory session store for per-browser result batches
	sessions := session.NewStore(cfg.SessionTTL)
	defer sessions.Close()

	// Job queue backed by SQLite
	jobQueue := job.NewJobQueue(database.DB())
	defer jobQueue.Stop()

	// Speech-to-text engines: saved settings override env defaults
	apiKey := cfg.ElevenLabsKey
	if apiKey == "" {
		apiKey = database.GetSetting("elevenlabs_api_key", "")
	}
	modelID := database.GetSetting("scribe_model_id", cfg.ScribeModelID)
	cfg.DefaultLang = database.GetSetting("default_language", cfg.DefaultLang)
	demoMode := database.GetSetting("demo_mode", "false") == "true"
	scribeService := scribe.NewService(cfg.UploadPath, sessions, apiKey, modelID, demoMode)
	jobQueue.RegisterHandler(job.JobTranscribe, scribeService.HandleJob)

	if apiKey == "" {
		log.Println("WARNING: no ElevenLabs API key configured, only the demo engine is available")
	}

	// Create router
	router := api.NewRouter(database, jwtService, cfg, jobQueue, sessions, scribeService)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Upload path: %s", cfg.UploadPath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		jobQueue.Stop()
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
