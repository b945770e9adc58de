package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, defaultHost, cfg.Host)
	require.Equal(t, defaultPort, cfg.Port)
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.CORSOrigins)
}

func TestLoadRequiresOpenAIKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadParsesCustomPortAndCORS(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadRejectsNonIntegerPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}
