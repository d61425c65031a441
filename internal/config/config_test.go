package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "FRONTEND_URL", "ALLOWED_ORIGINS", "CHANNEL_PREFIX", "REGISTRY_SHARDS",
		"SUPPRESS_DUPLICATE_BROADCAST", "WS_CALL_RATE", "WS_CALL_BURST", "REDIS_ENABLED",
		"REDIS_URL", "NATS_ENABLED", "NATS_URL", "SHUTDOWN_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ChannelPrefix != "bingo" {
		t.Errorf("ChannelPrefix = %q, want bingo", cfg.ChannelPrefix)
	}
	if cfg.RegistryShards != 32 {
		t.Errorf("RegistryShards = %d, want 32", cfg.RegistryShards)
	}
	if cfg.SuppressDuplicates {
		t.Error("SuppressDuplicates should default to false")
	}
	if cfg.WSCallRate != 10 || cfg.WSCallBurst != 20 {
		t.Errorf("WS limits = %v/%d, want 10/20", cfg.WSCallRate, cfg.WSCallBurst)
	}
	if !cfg.RedisEnabled || cfg.RedisURL != "localhost:6379" {
		t.Errorf("redis = %v %q", cfg.RedisEnabled, cfg.RedisURL)
	}
	if !cfg.NATSEnabled || cfg.NATSURL != "nats://localhost:4222" {
		t.Errorf("nats = %v %q", cfg.NATSEnabled, cfg.NATSURL)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FRONTEND_URL", "https://bingo.example.com")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("CHANNEL_PREFIX", "/topic/bingo/")
	t.Setenv("REGISTRY_SHARDS", "8")
	t.Setenv("SUPPRESS_DUPLICATE_BROADCAST", "true")
	t.Setenv("WS_CALL_RATE", "2.5")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("NATS_ENABLED", "0")

	cfg := LoadConfig()

	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.ChannelPrefix != "topic/bingo" {
		t.Errorf("ChannelPrefix = %q, want topic/bingo", cfg.ChannelPrefix)
	}
	if cfg.RegistryShards != 8 {
		t.Errorf("RegistryShards = %d", cfg.RegistryShards)
	}
	if !cfg.SuppressDuplicates {
		t.Error("SuppressDuplicates should be true")
	}
	if cfg.WSCallRate != 2.5 {
		t.Errorf("WSCallRate = %v", cfg.WSCallRate)
	}
	if cfg.RedisEnabled || cfg.NATSEnabled {
		t.Error("redis and nats should be disabled")
	}

	want := []string{"https://bingo.example.com", "http://localhost:5173", "https://a.example.com", "https://b.example.com"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.AllowedOrigins[i], want[i])
		}
	}
	if !cfg.IsOriginAllowed("https://b.example.com") {
		t.Error("expected b.example.com to be allowed")
	}
	if cfg.IsOriginAllowed("https://evil.example.com") {
		t.Error("expected evil.example.com to be rejected")
	}
}

func TestGetEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "twelve")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_FLOAT", "fast")

	if got := GetEnvAsInt("X_INT", 7); got != 7 {
		t.Errorf("GetEnvAsInt = %d, want 7", got)
	}
	if got := GetEnvAsBool("X_BOOL", true); !got {
		t.Error("GetEnvAsBool should fall back to true")
	}
	if got := GetEnvAsFloat("X_FLOAT", 1.5); got != 1.5 {
		t.Errorf("GetEnvAsFloat = %v, want 1.5", got)
	}
}
