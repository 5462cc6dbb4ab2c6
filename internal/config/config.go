package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

// AI cache store constants
const (
	AICacheTypeMemory = "memory"
	AICacheTypeRedis  = "redis"
)

type Config struct {
	// Server settings
	ServerAddr  string
	BaseURL     string // Backend base URL (used in verification links)
	FrontendURL string // SPA base URL (redirect target after email verification)
	Environment string // "development" or "production"

	// JWT settings
	JWTSecret             string
	JWTExpiration         time.Duration // session token lifetime
	EmailTokenSecret      string        // signs verification and reset tokens
	VerificationTokenTTL  time.Duration
	PasswordResetTokenTTL time.Duration

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string

	// Google sign-in
	GoogleClientID string

	// Admin bootstrap: emails granted admin role when their Google account
	// is first created. Never consulted on the authorization path; later
	// elevation goes through the `promote` subcommand.
	AdminEmails []string

	// SMTP settings
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
	EmailName    string

	// Gemini settings
	GeminiAPIKey     string
	GeminiModel      string
	GeminiTimeout    time.Duration
	GeminiMaxRetries int

	// AI response cache
	AICacheType string // "memory" or "redis"
	AICacheTTL  time.Duration

	// Metrics
	MetricsEnabled bool
	MetricsToken   string

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string // "memory" or "redis"
	RateLimitCleanupInterval time.Duration
	LoginRateLimit           int // requests per minute
	RegisterRateLimit        int
	ForgotPasswordRateLimit  int
	AIRateLimit              int

	// Redis (rate limiting and AI cache)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", "xzmovies.db")
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		Environment: getEnv("ENVIRONMENT", "development"),

		JWTSecret:             getEnv("JWT_SECRET", "your-256-bit-secret-change-in-production"),
		JWTExpiration:         getEnvDuration("JWT_EXPIRATION", 7*24*time.Hour),
		EmailTokenSecret:      getEnv("EMAIL_TOKEN_SECRET", ""),
		VerificationTokenTTL:  getEnvDuration("VERIFICATION_TOKEN_TTL", 24*time.Hour),
		PasswordResetTokenTTL: getEnvDuration("PASSWORD_RESET_TOKEN_TTL", time.Hour),

		DatabaseDriver: driver,
		DatabaseDSN:    dsn,

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		AdminEmails: getEnvSlice("ADMIN_EMAILS", nil),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("EMAIL_USER", ""),
		SMTPPassword: getEnv("EMAIL_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "")),
		EmailName:    getEnv("EMAIL_NAME", "XZMovies"),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiTimeout:    getEnvDuration("GEMINI_TIMEOUT", 30*time.Second),
		GeminiMaxRetries: getEnvInt("GEMINI_MAX_RETRIES", 2),

		AICacheType: getEnv("AI_CACHE_TYPE", AICacheTypeMemory),
		AICacheTTL:  getEnvDuration("AI_CACHE_TTL", 15*time.Minute),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		MetricsToken:   getEnv("METRICS_TOKEN", ""),

		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", true),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 10*time.Minute),
		LoginRateLimit:           getEnvInt("LOGIN_RATE_LIMIT", 10),
		RegisterRateLimit:        getEnvInt("REGISTER_RATE_LIMIT", 5),
		ForgotPasswordRateLimit:  getEnvInt("FORGOT_PASSWORD_RATE_LIMIT", 5),
		AIRateLimit:              getEnvInt("AI_RATE_LIMIT", 20),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
	}
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks configuration consistency at startup.
func (c *Config) Validate() error {
	switch c.RateLimitStore {
	case RateLimitStoreMemory, RateLimitStoreRedis:
	default:
		return fmt.Errorf(
			"invalid RATE_LIMIT_STORE value: %q (must be: memory, redis)",
			c.RateLimitStore,
		)
	}

	switch c.AICacheType {
	case AICacheTypeMemory, AICacheTypeRedis:
	default:
		return fmt.Errorf(
			"invalid AI_CACHE_TYPE value: %q (must be: memory, redis)",
			c.AICacheType,
		)
	}

	if c.DatabaseDriver == "postgres" && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required when DATABASE_DRIVER=postgres")
	}

	if c.EmailTokenSecret == "" {
		// Verification and reset tokens must not be forgeable with the
		// session secret in production.
		if c.IsProduction() {
			return fmt.Errorf("EMAIL_TOKEN_SECRET is required in production")
		}
		c.EmailTokenSecret = c.JWTSecret
	}

	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var parts []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
