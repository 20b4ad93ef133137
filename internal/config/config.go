package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds every knob the server reads from the environment.
type Config struct {
	Port            string
	SearchDepth     int // plies the engine looks ahead, the one search knob
	MaxSearchDepth  int // upper bound for per-game depth requests
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	TokenTTL        time.Duration
	JWTSecret       string
	RedisEnabled    bool
	RedisAddr       string
	RedisPassword   string
	AllowedOrigins  []string
	StaticDir       string // built frontend to serve, empty disables it
	LogLevel        string
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	searchDepth := GetEnvAsInt("SEARCH_DEPTH", 4)
	maxSearchDepth := GetEnvAsInt("MAX_SEARCH_DEPTH", 8)
	if searchDepth < 1 {
		log.Warn().Int("depth", searchDepth).Msg("SEARCH_DEPTH below 1, using 1")
		searchDepth = 1
	}
	if maxSearchDepth < searchDepth {
		maxSearchDepth = searchDepth
	}

	sessionTTLMin := GetEnvAsInt("SESSION_TTL_MINUTES", 60)
	cleanupIntervalMin := GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 10)
	tokenTTLHours := GetEnvAsInt("TOKEN_TTL_HOURS", 24)

	jwtSecret := GetEnv("JWT_SECRET", "change-this-secret-in-production")

	// Build allowed origins list from CSV
	var allowedOrigins []string
	if originsStr := GetEnv("ALLOWED_ORIGINS", ""); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	return &Config{
		Port:            port,
		SearchDepth:     searchDepth,
		MaxSearchDepth:  maxSearchDepth,
		SessionTTL:      time.Duration(sessionTTLMin) * time.Minute,
		CleanupInterval: time.Duration(cleanupIntervalMin) * time.Minute,
		TokenTTL:        time.Duration(tokenTTLHours) * time.Hour,
		JWTSecret:       jwtSecret,
		RedisEnabled:    GetEnvAsBool("REDIS_ENABLED", false),
		RedisAddr:       GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		AllowedOrigins:  allowedOrigins,
		StaticDir:       GetEnv("STATIC_DIR", ""),
		LogLevel:        GetEnv("LOG_LEVEL", "info"),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).
			Msg("invalid integer in environment, using default")
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).
			Msg("invalid boolean in environment, using default")
		return defaultValue
	}
	return value
}
