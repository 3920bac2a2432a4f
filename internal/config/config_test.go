package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	vars := append([]string{"APP_ENV", "PORT", "CORS_ORIGINS", "GROQ_MODEL",
		"GROQ_FALLBACK_MODELS", "GROQ_TEMPERATURE", "GROQ_TOP_P"}, KeyAliases...)
	for _, v := range vars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Groq.Model)
	assert.Len(t, cfg.Groq.FallbackModels, 3)
	assert.InDelta(t, 0.2, cfg.Groq.Temperature, 0.001)
	assert.InDelta(t, 0.9, cfg.Groq.TopP, 0.001)
	assert.Equal(t, 3, cfg.Groq.MaxRetries)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxUploadBytes())
	assert.True(t, cfg.DevLike())
	assert.False(t, cfg.HasGroqKey())
	assert.False(t, cfg.DatabaseEnabled())
	assert.False(t, cfg.MinioEnabled())
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
appEnv: production
server:
  port: 9090
groq:
  model: llama-3.1-8b-instant
  maxRetries: 5
database:
  driver: mysql
  host: db
  port: 3306
  user: app
  password: secret
  name: resumes
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Groq.Model)
	assert.Equal(t, 5, cfg.Groq.MaxRetries)
	assert.False(t, cfg.DevLike())
	assert.True(t, cfg.DatabaseEnabled())
	assert.Equal(t, "app:secret@tcp(db:3306)/resumes?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7001")
	t.Setenv("GROQ_MODEL", "mixtral-8x7b-32768")
	t.Setenv("GROQ_FALLBACK_MODELS", "a-model, b-model")
	t.Setenv("GROQ_TEMPERATURE", "0.7")
	t.Setenv("CORS_ORIGINS", "https://resume.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7001, cfg.Server.Port)
	assert.Equal(t, "mixtral-8x7b-32768", cfg.Groq.Model)
	assert.Equal(t, []string{"a-model", "b-model"}, cfg.Groq.FallbackModels)
	assert.InDelta(t, 0.7, cfg.Groq.Temperature, 0.001)
	assert.Equal(t, []string{"https://resume.example.com"}, cfg.CORS.Origins)
}

func TestGroqKeyAliases(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_SECRET", "gsk_alias_value")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.HasGroqKey())
	assert.Equal(t, "gsk_alias_value", cfg.Groq.APIKey)
}

func TestMaskedGroqKey(t *testing.T) {
	var cfg Config
	assert.Equal(t, "", cfg.MaskedGroqKey())

	cfg.Groq.APIKey = "short"
	assert.Equal(t, "***", cfg.MaskedGroqKey())

	cfg.Groq.APIKey = "gsk_1234567890abcdef"
	assert.Equal(t, "gsk_12...cdef", cfg.MaskedGroqKey())
}
