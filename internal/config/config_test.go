package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_URI", "")
	t.Setenv("AI_THINK_DELAY_MS", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("expected empty database url, got %s", cfg.DatabaseURL)
	}
	if cfg.AIThinkDelay != time.Second {
		t.Errorf("expected 1s think delay, got %v", cfg.AIThinkDelay)
	}
	if cfg.DefaultVariant != "6x7" {
		t.Errorf("expected 6x7 variant, got %s", cfg.DefaultVariant)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")
	t.Setenv("AI_THINK_DELAY_MS", "250")
	t.Setenv("SESSION_IDLE_TIMEOUT_MINUTES", "5")
	t.Setenv("FRONTEND_URL", "https://dots.example")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://dots.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://u:p@localhost:5432/db?default_query_exec_mode=simple_protocol" {
		t.Errorf("unexpected database url: %s", cfg.DatabaseURL)
	}
	if cfg.AIThinkDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.AIThinkDelay)
	}
	if cfg.SessionIdleTimeout != 5*time.Minute {
		t.Errorf("expected 5m, got %v", cfg.SessionIdleTimeout)
	}
	want := []string{"https://dots.example", "http://localhost:5173", "https://a.example"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("expected origins %v, got %v", want, cfg.AllowedOrigins)
	}
	for i := range want {
		if cfg.AllowedOrigins[i] != want[i] {
			t.Errorf("origin %d: expected %s, got %s", i, want[i], cfg.AllowedOrigins[i])
		}
	}
}

func TestLibPQURLUntouched(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DatabaseURL != "postgres://u:p@localhost:5432/db" {
		t.Errorf("expected url untouched for lib/pq, got %s", cfg.DatabaseURL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"7000\"\ndefault_variant: 6x6\nlog_format: console\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_VARIANT", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "7000" || cfg.DefaultVariant != "6x6" || cfg.LogFormat != "console" {
		t.Errorf("file values not applied: %+v", cfg)
	}

	t.Setenv("PORT", "7100")
	cfg, _ = LoadConfig()
	if cfg.Port != "7100" {
		t.Errorf("expected env to win over file, got %s", cfg.Port)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DELAY", "3")
	if got := GetEnvAsDuration("TEST_DELAY", time.Second, time.Minute); got != 3*time.Second {
		t.Errorf("expected 3s, got %v", got)
	}
	t.Setenv("TEST_DELAY", "abc")
	if got := GetEnvAsDuration("TEST_DELAY", time.Second, time.Minute); got != time.Minute {
		t.Errorf("expected default on bad value, got %v", got)
	}
	t.Setenv("TEST_DELAY", "0")
	if got := GetEnvAsDuration("TEST_DELAY", time.Millisecond, time.Second); got != 0 {
		t.Errorf("expected zero, got %v", got)
	}
}

func TestZeroIntervalsFallBackToDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("CLEANUP_INTERVAL_SECONDS", "0")
	t.Setenv("SESSION_IDLE_TIMEOUT_MINUTES", "0")
	t.Setenv("STATS_CACHE_TTL_SECONDS", "0")
	t.Setenv("AI_THINK_DELAY_MS", "0")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.CleanupInterval != time.Minute {
		t.Errorf("expected default cleanup interval, got %v", cfg.CleanupInterval)
	}
	if cfg.SessionIdleTimeout != time.Hour {
		t.Errorf("expected default idle timeout, got %v", cfg.SessionIdleTimeout)
	}
	if cfg.StatsCacheTTL != 30*time.Second {
		t.Errorf("expected default cache ttl, got %v", cfg.StatsCacheTTL)
	}
	if cfg.AIThinkDelay != 0 {
		t.Errorf("expected zero think delay to be kept, got %v", cfg.AIThinkDelay)
	}
}

func TestZeroIntervalInConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("cleanup_interval: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CLEANUP_INTERVAL_SECONDS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.CleanupInterval != time.Minute {
		t.Errorf("expected default cleanup interval, got %v", cfg.CleanupInterval)
	}
}
