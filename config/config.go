// Package config loads the process's environment-variable configuration
// into a flat, typed Config struct, following the source's flat Settings
// field list (original_source/backend/app/config.py) and the pack's
// Getenv-with-default idiom (sidedotdev-sidekick/common/hosts_and_ports.go)
// rather than a struct-tag env-binding library.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds every environment-derived setting the process needs.
type Config struct {
	OpenAIAPIKey string
	GeminiAPIKey string

	MongoURI string

	CORSOrigins []string

	SecretKey string

	Host string
	Port int
}

const (
	defaultHost = "0.0.0.0"
	defaultPort = 8000
)

// Load reads Config from the process environment, applying the same
// defaults the source's Settings class does. OPENAI_API_KEY, SECRET_KEY and
// MONGO_URI (or DATABASE_URL) are required; everything else falls back to a
// default.
func Load() (Config, error) {
	cfg := Config{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		MongoURI:     getenvDefault("MONGO_URI", getenvDefault("DATABASE_URL", "")),
		CORSOrigins:  splitCORSOrigins(getenvDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		SecretKey:    os.Getenv("SECRET_KEY"),
		Host:         getenvDefault("HOST", defaultHost),
		Port:         defaultPort,
	}

	if cfg.OpenAIAPIKey == "" {
		return Config{}, fmt.Errorf("config: OPENAI_API_KEY is required")
	}
	if cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("config: SECRET_KEY is required")
	}
	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("config: MONGO_URI is required")
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: PORT must be an integer, got %q", raw)
		}
		cfg.Port = port
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCORSOrigins(raw string) []string {
	var out []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
