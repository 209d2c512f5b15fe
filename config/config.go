package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends for events and the date index
const (
	BackendPostgres = "postgres"
	BackendFirebase = "firebase"
	BackendMemory   = "memory"
)

type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173,http://localhost:4173"`
	GinMode        string   `env:"GIN_MODE" envDefault:"debug"`

	// ✅ Storage
	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`
	DBHost       string `env:"DB_HOST" envDefault:"localhost"`
	DBPort       string `env:"DB_PORT" envDefault:"5432"`
	DBUser       string `env:"DB_USER" envDefault:"postgres"`
	DBPassword   string `env:"DB_PASSWORD"`
	DBName       string `env:"DB_NAME" envDefault:"campus_events"`
	DBSSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`

	// ✅ Firebase Realtime Database
	FirebaseCredentialsPath string `env:"GOOGLE_APPLICATION_CREDENTIALS" envDefault:"./serviceAccountKey.json"`
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FirebaseDatabaseURL     string `env:"FIREBASE_DATABASE_URL"`

	// ✅ Admin session
	JWTSecret       string `env:"JWT_SECRET"`
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"6"`
	CookieSecure    bool   `env:"COOKIE_SECURE" envDefault:"false"`
	AdminEmail      string `env:"ADMIN_EMAIL"`
	AdminPassword   string `env:"ADMIN_PASSWORD"`

	// ✅ Status rules
	UpcomingThresholdDays int    `env:"UPCOMING_THRESHOLD_DAYS" envDefault:"30"`
	OngoingInclusiveEnd   bool   `env:"ONGOING_INCLUSIVE_END" envDefault:"true"`
	CampusTimezone        string `env:"CAMPUS_TIMEZONE" envDefault:"UTC"`
	CampusCatalogPath     string `env:"CAMPUS_CATALOG_PATH"`

	// ✅ Redis Config
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`
	RateLimitPerMinute int64  `env:"RATE_LIMIT_PER_MINUTE" envDefault:"100"`

	// ✅ Kafka change feed
	KafkaBrokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaEventsTopic string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"campus.events"`

	// ✅ Jobs
	IndexReconcileCron  string `env:"INDEX_RECONCILE_CRON" envDefault:"@hourly"`
	IndexReconcileApply bool   `env:"INDEX_RECONCILE_APPLY" envDefault:"true"`
}

// Load reads .env (when present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case BackendPostgres, BackendFirebase, BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be postgres, firebase or memory, got %q", c.StoreBackend)
	}
	if c.StoreBackend == BackendFirebase && c.FirebaseDatabaseURL == "" {
		return fmt.Errorf("FIREBASE_DATABASE_URL is required for the firebase backend")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.UpcomingThresholdDays <= 0 {
		return fmt.Errorf("UPCOMING_THRESHOLD_DAYS must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the campus wall clock used for "today".
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.CampusTimezone)
	if err != nil {
		return nil, fmt.Errorf("CAMPUS_TIMEZONE: %w", err)
	}
	return loc, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
