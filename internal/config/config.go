package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	FrontendURL     string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	// Broadcast core
	ChannelPrefix      string
	RegistryShards     int
	SuppressDuplicates bool

	// WebSocket intake throttling (calls per second per connection)
	WSCallRate  float64
	WSCallBurst int

	RedisEnabled  bool
	RedisURL      string
	RedisPassword string
	RedisDB       int

	NATSEnabled bool
	NATSURL     string

	LogLevel  string
	LogFormat string
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:3000")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	channelPrefix := strings.Trim(GetEnv("CHANNEL_PREFIX", "bingo"), "/")
	if channelPrefix == "" {
		channelPrefix = "bingo"
	}

	return &Config{
		Port:            port,
		FrontendURL:     frontendURL,
		AllowedOrigins:  allowedOrigins,
		ShutdownTimeout: time.Duration(GetEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,

		ChannelPrefix:      channelPrefix,
		RegistryShards:     GetEnvAsInt("REGISTRY_SHARDS", 32),
		SuppressDuplicates: GetEnvAsBool("SUPPRESS_DUPLICATE_BROADCAST", false),

		WSCallRate:  GetEnvAsFloat("WS_CALL_RATE", 10),
		WSCallBurst: GetEnvAsInt("WS_CALL_BURST", 20),

		RedisEnabled:  GetEnvAsBool("REDIS_ENABLED", true),
		RedisURL:      GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvAsInt("REDIS_DB", 0),

		NATSEnabled: GetEnvAsBool("NATS_ENABLED", true),
		NATSURL:     GetEnv("NATS_URL", "nats://localhost:4222"),

		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		LogFormat: GetEnv("LOG_FORMAT", "console"),
	}
}

// IsOriginAllowed reports whether a browser origin may open a socket or call the API.
func (c *Config) IsOriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
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
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		log.Printf("Invalid number value for %s: %s, using default: %g", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
