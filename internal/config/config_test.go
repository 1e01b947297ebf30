package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "fixed-secret")

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Port=%d, want 8080", cfg.Port)
	}
	if cfg.DataPath != "/data" {
		t.Errorf("DataPath=%q", cfg.DataPath)
	}
	if cfg.UploadPath != "/data/uploads" {
		t.Errorf("UploadPath=%q", cfg.UploadPath)
	}
	if cfg.ScribeModelID != "scribe_v2" {
		t.Errorf("ScribeModelID=%q", cfg.ScribeModelID)
	}
	if cfg.MaxUploadBytes != 100*1024*1024 {
		t.Errorf("MaxUploadBytes=%d", cfg.MaxUploadBytes)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL=%v", cfg.SessionTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins=%v", cfg.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_PATH", "/srv/discovery")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("ELEVENLABS_API_KEY", "xi-key")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com")
	t.Setenv("SESSION_TTL_MINUTES", "30")

	cfg := Load()
	if cfg.Port != 9090 {
		t.Errorf("Port=%d", cfg.Port)
	}
	if cfg.DBPath != "/srv/discovery/discovery.db" {
		t.Errorf("DBPath=%q", cfg.DBPath)
	}
	if cfg.ElevenLabsKey != "xi-key" {
		t.Errorf("ElevenLabsKey=%q", cfg.ElevenLabsKey)
	}
	want := []string{"https://app.example.com", "https://staging.example.com"}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != want[0] || cfg.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins=%v, want %v", cfg.CORSOrigins, want)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL=%v", cfg.SessionTTL)
	}
}

func TestLoad_RandomJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	if cfg.JWTSecret == "" {
		t.Fatal("JWTSecret must be generated when unset")
	}
	if len(cfg.JWTSecret) != 64 {
		t.Errorf("generated secret length=%d, want 64 hex chars", len(cfg.JWTSecret))
	}
}
