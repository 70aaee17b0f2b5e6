package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Provider  ProviderConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	App       AppConfig
}

type ServerConfig struct {
	Port           string
	Production     bool
	AllowedOrigins []string
	// TrustedProxies may set X-Forwarded-For; empty means the peer address is the client.
	TrustedProxies []string
}

// ProviderConfig holds the settings of the hosted completion API.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DatabaseConfig is optional. With neither DSN nor Host set the audit log is disabled.
type DatabaseConfig struct {
	DSN           string
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	AuditTable    string
	RetentionDays int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	PerMinute int
}

type AppConfig struct {
	ServiceName string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "5000"),
			Production:     getEnvAsBool("PRODUCTION", false),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
			TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		},
		Provider: ProviderConfig{
			APIKey:  getEnv("TOGETHER_API_KEY", ""),
			BaseURL: strings.TrimRight(getEnv("TOGETHER_BASE_URL", "https://api.together.xyz"), "/"),
			Model:   getEnv("TOGETHER_MODEL", "meta-llama/Meta-Llama-3-70B-Instruct-Turbo"),
			Timeout: getEnvAsDuration("TOGETHER_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			DSN:           getEnv("DB_DSN", ""),
			Host:          getEnv("DB_HOST", ""),
			Port:          getEnvAsInt("DB_PORT", 5432),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", ""),
			Name:          getEnv("DB_NAME", "aisearch"),
			AuditTable:    getEnv("AUDIT_TABLE", "search_audit"),
			RetentionDays: getEnvAsInt("AUDIT_RETENTION_DAYS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			PerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		},
		App: AppConfig{
			ServiceName: getEnv("SERVICE_NAME", "ai-search-backend"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if p, err := strconv.Atoi(c.Server.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("PORT must be a valid port number, got %q", c.Server.Port)
	}

	if c.Server.Production && len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS is required when PRODUCTION is true")
	}
	for _, o := range c.Server.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("ALLOWED_ORIGINS entry %q must start with http:// or https://", o)
		}
	}

	for _, p := range c.Server.TrustedProxies {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", p)
			}
		}
	}

	if c.Provider.BaseURL == "" {
		return fmt.Errorf("TOGETHER_BASE_URL is required")
	}

	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}

	return nil
}

// Environment is the gin mode name for this configuration.
func (c *Config) Environment() string {
	if c.Server.Production {
		return "production"
	}
	return "development"
}

// AuditEnabled reports whether a Postgres connection has been configured.
func (d DatabaseConfig) AuditEnabled() bool {
	return d.DSN != "" || d.Host != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warnf("Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	return strings.EqualFold(valueStr, "true")
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		log.Warnf("Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
