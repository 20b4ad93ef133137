package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SEARCH_DEPTH", "MAX_SEARCH_DEPTH", "SESSION_TTL_MINUTES",
		"CLEANUP_INTERVAL_MINUTES", "TOKEN_TTL_HOURS", "JWT_SECRET",
		"REDIS_ENABLED", "REDIS_ADDR", "REDIS_PASSWORD", "ALLOWED_ORIGINS",
		"LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.SearchDepth)
	assert.Equal(t, 8, cfg.MaxSearchDepth)
	assert.Equal(t, 60*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SEARCH_DEPTH", "6")
	t.Setenv("MAX_SEARCH_DEPTH", "7")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://example.com, http://localhost:5173")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 6, cfg.SearchDepth)
	assert.Equal(t, 7, cfg.MaxSearchDepth)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, []string{"https://example.com", "http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoadConfigClampsDepth(t *testing.T) {
	t.Setenv("SEARCH_DEPTH", "0")
	t.Setenv("MAX_SEARCH_DEPTH", "")

	cfg := LoadConfig()
	assert.Equal(t, 1, cfg.SearchDepth)

	t.Setenv("SEARCH_DEPTH", "10")
	t.Setenv("MAX_SEARCH_DEPTH", "8")

	cfg = LoadConfig()
	assert.Equal(t, 10, cfg.SearchDepth)
	assert.Equal(t, 10, cfg.MaxSearchDepth)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SOME_STRING", "value")
	t.Setenv("SOME_INT", "42")
	t.Setenv("SOME_BAD_INT", "not-a-number")
	t.Setenv("SOME_BOOL", "true")
	t.Setenv("SOME_BAD_BOOL", "yep")

	assert.Equal(t, "value", GetEnv("SOME_STRING", "fallback"))
	assert.Equal(t, "fallback", GetEnv("SOME_MISSING", "fallback"))
	assert.Equal(t, 42, GetEnvAsInt("SOME_INT", 7))
	assert.Equal(t, 7, GetEnvAsInt("SOME_BAD_INT", 7))
	assert.Equal(t, 7, GetEnvAsInt("SOME_MISSING", 7))
	assert.True(t, GetEnvAsBool("SOME_BOOL", false))
	assert.False(t, GetEnvAsBool("SOME_BAD_BOOL", false))
	assert.True(t, GetEnvAsBool("SOME_MISSING", true))
}
