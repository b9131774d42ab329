package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"strings"
	"time"
)

// Capacity policies for reservations on a sold-out listing.
const (
	CapacityPolicyReject = "reject"
	CapacityPolicyClamp  = "clamp"
)

// Seed sources.
const (
	SeedSourceBuiltin = "builtin"
	SeedSourceFile    = "file"
	SeedSourceMongo   = "mongo"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	RunMode string // Set via flag, not env

	// Server
	ApiPort           string
	ServiceApiPort    string
	CorsAllowedOrigin string

	// Presentation
	Locale   string
	Currency string

	// Reservations
	CapacityPolicy   string
	SalesTeamEmail   string
	ReserveBurst     int
	ReservePerMinute int

	// JWT (admin)
	JwtSecret string
	JwtTTL    time.Duration

	// Seed
	SeedSource     string
	SeedFile       string
	MongoURI       string
	MongoDbName    string
	SeedCollection string

	// Redis (optional, enables background notifications)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Email
	SmtpHost        string
	SmtpPort        int
	SmtpUsername    string
	SmtpPassword    string
	SmtpFromAddress string
	LogEmailsPath   string
	MockServices    bool

	// Logging
	LogLevel  string
	LogFormat string
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		RunMode: runMode,
	}

	var err error

	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	cfg.ApiPort = getEnv("API_PORT", "8080")
	cfg.ServiceApiPort = getEnv("SERVICE_API_PORT", "12345")
	cfg.CorsAllowedOrigin = getEnv("CORS_ALLOWED_ORIGIN", "*")
	cfg.Locale = getEnv("LOCALE", "nl-NL")
	cfg.Currency = getEnv("CURRENCY", "EUR")
	cfg.CapacityPolicy = strings.ToLower(getEnv("CAPACITY_POLICY", CapacityPolicyReject))
	cfg.SalesTeamEmail = getEnv("SALES_TEAM_EMAIL", "sales@example.com")
	cfg.JwtSecret = getEnv("JWT_SECRET", "")
	cfg.SeedSource = strings.ToLower(getEnv("SEED_SOURCE", SeedSourceBuiltin))
	cfg.SeedFile = getEnv("SEED_FILE", "")
	cfg.MongoURI = getEnv("MONGO_URI", "")
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "showroom")
	cfg.SeedCollection = getEnv("SEED_COLLECTION", "listings")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.SmtpHost = getEnv("SMTP_HOST", "")
	cfg.SmtpUsername = getEnv("SMTP_USERNAME", "")
	cfg.SmtpPassword = getEnv("SMTP_PASSWORD", "")
	cfg.SmtpFromAddress = getEnv("SMTP_FROM_ADDRESS", "noreply@showroom.example.com")
	cfg.LogEmailsPath = getEnv("LOG_EMAILS", "")
	cfg.MockServices = getEnv("MOCK_SERVICES", "false") == "true"
	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "color"))

	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtTTLSeconds, err := strconv.ParseInt(getEnv("JWT_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_SECONDS: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLSeconds) * time.Second

	cfg.SmtpPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg.ReserveBurst, err = strconv.Atoi(getEnv("RATE_LIMIT_RESERVE_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RESERVE_BURST: %w", err)
	}
	cfg.ReservePerMinute, err = strconv.Atoi(getEnv("RATE_LIMIT_RESERVE_PER_MINUTE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RESERVE_PER_MINUTE: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CapacityPolicy {
	case CapacityPolicyReject, CapacityPolicyClamp:
	default:
		return fmt.Errorf("invalid CAPACITY_POLICY %q: expected %q or %q", c.CapacityPolicy, CapacityPolicyReject, CapacityPolicyClamp)
	}
	switch c.SeedSource {
	case SeedSourceBuiltin:
	case SeedSourceFile:
		if c.SeedFile == "" {
			return fmt.Errorf("SEED_FILE is required when SEED_SOURCE=%s", SeedSourceFile)
		}
	case SeedSourceMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when SEED_SOURCE=%s", SeedSourceMongo)
		}
	default:
		return fmt.Errorf("invalid SEED_SOURCE %q", c.SeedSource)
	}
	if c.ReserveBurst <= 0 || c.ReservePerMinute <= 0 {
		return fmt.Errorf("reservation rate limits must be positive")
	}
	return nil
}

// RequireJwtSecret fails when no admin signing secret is configured.
func (c *Config) RequireJwtSecret() error {
	if c.JwtSecret == "" {
		return fmt.Errorf("missing required environment variable: JWT_SECRET")
	}
	return nil
}

// NotificationsEnabled reports whether reservation follow-ups go through the task queue.
func (c *Config) NotificationsEnabled() bool {
	return c.RedisAddr != ""
}
