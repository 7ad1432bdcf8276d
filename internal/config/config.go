package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Port                 string        `yaml:"port"`
	AllowedOrigins       []string      `yaml:"allowed_origins"`
	FrontendURL          string        `yaml:"frontend_url"`
	DatabaseURL          string        `yaml:"database_url"`
	DBDriver             string        `yaml:"db_driver"`
	DBMaxOpenConns       int           `yaml:"db_max_open_conns"`
	DBMaxIdleConns       int           `yaml:"db_max_idle_conns"`
	DBConnMaxLifetimeMin int           `yaml:"db_conn_max_lifetime_minutes"`
	RedisURL             string        `yaml:"redis_url"`
	RedisPassword        string        `yaml:"redis_password"`
	StatsCacheTTL        time.Duration `yaml:"stats_cache_ttl"`
	AIThinkDelay         time.Duration `yaml:"ai_think_delay"`
	SessionIdleTimeout   time.Duration `yaml:"session_idle_timeout"`
	CleanupInterval      time.Duration `yaml:"cleanup_interval"`
	DefaultVariant       string        `yaml:"default_variant"`
	LogLevel             string        `yaml:"log_level"`
	LogFormat            string        `yaml:"log_format"`
}

func defaults() *Config {
	return &Config{
		Port:                 "8080",
		FrontendURL:          "http://localhost:5173",
		DBDriver:             "pgx",
		DBMaxOpenConns:       25,
		DBMaxIdleConns:       25,
		DBConnMaxLifetimeMin: 5,
		RedisURL:             "localhost:6379",
		StatsCacheTTL:        30 * time.Second,
		AIThinkDelay:         time.Second,
		SessionIdleTimeout:   time.Hour,
		CleanupInterval:      time.Minute,
		DefaultVariant:       "6x7",
		LogLevel:             "info",
		LogFormat:            "json",
	}
}

// LoadConfig starts from defaults, applies the YAML file named by CONFIG_FILE if
// any, then environment variables.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = GetEnv("PORT", cfg.Port)
	cfg.FrontendURL = GetEnv("FRONTEND_URL", cfg.FrontendURL)
	cfg.DBDriver = GetEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DatabaseURL = GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", cfg.DatabaseURL))
	if cfg.DBDriver == "pgx" {
		cfg.DatabaseURL = withSimpleProtocol(cfg.DatabaseURL)
	}
	cfg.DBMaxOpenConns = GetEnvAsInt("DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns)
	cfg.DBMaxIdleConns = GetEnvAsInt("DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns)
	cfg.DBConnMaxLifetimeMin = GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", cfg.DBConnMaxLifetimeMin)
	cfg.RedisURL = GetEnv("REDIS_URL", cfg.RedisURL)
	cfg.RedisPassword = GetEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.StatsCacheTTL = GetEnvAsPositiveDuration("STATS_CACHE_TTL_SECONDS", time.Second, cfg.StatsCacheTTL)
	cfg.AIThinkDelay = GetEnvAsDuration("AI_THINK_DELAY_MS", time.Millisecond, cfg.AIThinkDelay)
	cfg.SessionIdleTimeout = GetEnvAsPositiveDuration("SESSION_IDLE_TIMEOUT_MINUTES", time.Minute, cfg.SessionIdleTimeout)
	cfg.CleanupInterval = GetEnvAsPositiveDuration("CLEANUP_INTERVAL_SECONDS", time.Second, cfg.CleanupInterval)
	cfg.DefaultVariant = GetEnv("DEFAULT_VARIANT", cfg.DefaultVariant)
	cfg.LogLevel = GetEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = GetEnv("LOG_FORMAT", cfg.LogFormat)

	// a zero from the config file would stop the cleanup ticker or evict every game
	base := defaults()
	if cfg.StatsCacheTTL <= 0 {
		cfg.StatsCacheTTL = base.StatsCacheTTL
	}
	if cfg.SessionIdleTimeout <= 0 {
		cfg.SessionIdleTimeout = base.SessionIdleTimeout
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = base.CleanupInterval
	}

	// Frontend URL + localhost + CSV values
	origins := append([]string{cfg.FrontendURL, "http://localhost:5173"}, cfg.AllowedOrigins...)
	if extra := GetEnv("ALLOWED_ORIGINS", ""); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}
	cfg.AllowedOrigins = dedupe(origins)

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Append simple_protocol for PgBouncer compatibility. lib/pq would send it as a runtime parameter.
func withSimpleProtocol(dbURL string) string {
	if dbURL == "" {
		return dbURL
	}
	u, err := url.Parse(dbURL)
	if err != nil {
		return dbURL
	}
	q := u.Query()
	if q.Get("default_query_exec_mode") == "" {
		q.Set("default_query_exec_mode", "simple_protocol")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
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

// GetEnvAsDuration reads an integer count of unit.
func GetEnvAsDuration(key string, unit time.Duration, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		log.Printf("Invalid duration value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return time.Duration(value) * unit
}

// GetEnvAsPositiveDuration is GetEnvAsDuration for intervals and timeouts, where
// zero is rejected too.
func GetEnvAsPositiveDuration(key string, unit time.Duration, defaultValue time.Duration) time.Duration {
	value := GetEnvAsDuration(key, unit, defaultValue)
	if value <= 0 {
		log.Printf("Non-positive value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}
	return value
}
