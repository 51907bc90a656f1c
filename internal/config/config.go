package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// DefaultHighValueThreshold applies when HIGH_VALUE_THRESHOLD is unset or invalid.
var DefaultHighValueThreshold = decimal.NewFromInt(5000)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
	Slack    SlackConfig
	Webhook  WebhookConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds the verification settings for tokens issued by the identity provider
type JWTConfig struct {
	Secret         string
	AcceptableSkew time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	FrontendURL string
}

// PayrollConfig holds the engine's tunables
type PayrollConfig struct {
	HighValueThreshold        decimal.Decimal
	StaleSessionCheckInterval time.Duration
	RateLimitPerMinute        string
}

type SlackConfig struct {
	BotToken        string
	OperatorChannel string
}

type WebhookConfig struct {
	// IdentitySecret is the Svix endpoint secret for Clerk deliveries ("whsec_...")
	IdentitySecret string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "broker_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "America/New_York"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	skew, err := time.ParseDuration(getEnv("JWT_ACCEPTABLE_SKEW", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCEPTABLE_SKEW: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:         getEnv("JWT_SECRET_KEY", ""),
		AcceptableSkew: skew,
	}

	staleInterval, err := time.ParseDuration(getEnv("STALE_SESSION_CHECK_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STALE_SESSION_CHECK_INTERVAL: %w", err)
	}

	config.Payroll = PayrollConfig{
		HighValueThreshold:        parseThreshold(os.Getenv("HIGH_VALUE_THRESHOLD")),
		StaleSessionCheckInterval: staleInterval,
		RateLimitPerMinute:        getEnv("RATE_LIMIT", "60-M"),
	}

	config.Slack = SlackConfig{
		BotToken:        getEnv("SLACK_BOT_TOKEN", ""),
		OperatorChannel: getEnv("SLACK_OPERATOR_CHANNEL", ""),
	}

	config.Webhook = WebhookConfig{
		IdentitySecret: getEnv("IDENTITY_WEBHOOK_SECRET", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// RedisAddr returns host:port for the redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// parseThreshold falls back to the default when the value is absent, malformed or not positive.
func parseThreshold(raw string) decimal.Decimal {
	if raw == "" {
		slog.Warn("HIGH_VALUE_THRESHOLD not set, using default", "default", DefaultHighValueThreshold.StringFixed(2))
		return DefaultHighValueThreshold
	}
	threshold, err := decimal.NewFromString(raw)
	if err != nil || !threshold.IsPositive() {
		slog.Warn("Invalid HIGH_VALUE_THRESHOLD, using default", "value", raw, "default", DefaultHighValueThreshold.StringFixed(2))
		return DefaultHighValueThreshold
	}
	return threshold
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
