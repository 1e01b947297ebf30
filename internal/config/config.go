package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           int
	DataPath       string
	DBPath         string
	UploadPath     string
	JWTSecret      string
	AdminUsername  string
	AdminPassword  string
	ElevenLabsKey  string
	ScribeModelID  string
	DefaultLang    string
	CORSOrigins    []string
	MaxUploadBytes int64
	SessionTTL     time.Duration
}

func Load() *Config {
	// Optional .env file for local development; real deployments set env vars
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "/data")

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("Failed to generate random JWT secret: %v", err)
		}
		jwtSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	maxUploadMB, _ := strconv.Atoi(getEnv("MAX_UPLOAD_MB", "100"))
	ttlMinutes, _ := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "120"))

	return &Config{
		Port:           port,
		DataPath:       dataPath,
		DBPath:         getEnv("DB_PATH", dataPath+"/discovery.db"),
		UploadPath:     getEnv("UPLOAD_PATH", dataPath+"/uploads"),
		JWTSecret:      jwtSecret,
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin"),
		ElevenLabsKey:  os.Getenv("ELEVENLABS_API_KEY"),
		ScribeModelID:  getEnv("SCRIBE_MODEL_ID", "scribe_v2"),
		DefaultLang:    getEnv("DEFAULT_LANGUAGE", "en"),
		CORSOrigins:    corsOrigins,
		MaxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
		SessionTTL:     time.Duration(ttlMinutes) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
