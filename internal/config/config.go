package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port            string
	BoardWidth      int
	BoardHeight     int
	PlayerColors    []string
	InputCooldown   time.Duration
	AnnounceDelay   time.Duration
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	RedisURL        string
	RedisPassword   string
	AllowedOrigins  []string
	FrontendURL     string
	LogLevel        string
	LogPretty       bool
	StaticDir       string
}

var defaultColors = []string{"red", "yellow", "green", "blue", "purple", "orange"}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Board
	boardWidth := GetEnvAsInt("BOARD_WIDTH", 7)
	boardHeight := GetEnvAsInt("BOARD_HEIGHT", 6)
	playerColors := GetEnvAsList("PLAYER_COLORS", defaultColors)

	// Presentation timings: the page re-enables clicks after the cooldown and
	// announces the result once the drop animation has played.
	inputCooldownMs := GetEnvAsIntAtLeast("INPUT_COOLDOWN_MS", 300, 0)
	announceDelayMs := GetEnvAsIntAtLeast("ANNOUNCE_DELAY_MS", 700, 0)

	// Sessions
	sessionTTLMin := GetEnvAsIntAtLeast("SESSION_TTL_MINUTES", 60, 1)
	cleanupIntervalMin := GetEnvAsIntAtLeast("CLEANUP_INTERVAL_MINUTES", 10, 1)

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	for _, origin := range GetEnvAsList("ALLOWED_ORIGINS", nil) {
		if origin != frontendURL {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}

	return &Config{
		Port:            port,
		BoardWidth:      boardWidth,
		BoardHeight:     boardHeight,
		PlayerColors:    playerColors,
		InputCooldown:   time.Duration(inputCooldownMs) * time.Millisecond,
		AnnounceDelay:   time.Duration(announceDelayMs) * time.Millisecond,
		SessionTTL:      time.Duration(sessionTTLMin) * time.Minute,
		CleanupInterval: time.Duration(cleanupIntervalMin) * time.Minute,
		RedisURL:        GetEnv("REDIS_URL", ""),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		AllowedOrigins:  allowedOrigins,
		FrontendURL:     frontendURL,
		LogLevel:        GetEnv("LOG_LEVEL", "info"),
		LogPretty:       GetEnvAsBool("LOG_PRETTY", false),
		StaticDir:       GetEnv("STATIC_DIR", "./static"),
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
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("Invalid integer value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsIntAtLeast is GetEnvAsInt with values below minValue replaced by the default.
func GetEnvAsIntAtLeast(key string, defaultValue, minValue int) int {
	value := GetEnvAsInt(key, defaultValue)
	if value < minValue {
		log.Warn().Str("key", key).Int("value", value).Int("min", minValue).Int("default", defaultValue).Msg("Value out of range, using default")
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
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("Invalid boolean value, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsList splits a comma separated value, dropping blanks.
func GetEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
