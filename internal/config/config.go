package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Auth     AuthConfig
	Trip     TripConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// AuthConfig holds session token configuration.
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// TripConfig holds the simulated trip transition delays. The defaults mirror
// the observed product behavior; they carry no business meaning beyond pacing
// the simulation and may be tuned freely.
type TripConfig struct {
	FoundDelay    time.Duration // Searching -> DriverFound
	ArrivedDelay  time.Duration // DriverFound -> DriverArrived
	RidingDelay   time.Duration // DriverArrived -> Riding
	CompleteDelay time.Duration // Riding -> Completed
}

// Load loads configuration from the environment, reading .env first if present.
func Load() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ecoruta"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       cast.ToInt(getEnv("REDIS_DB", "0")),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "ecoruta"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    cast.ToBool(getEnv("NEW_RELIC_ENABLED", "false")),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),
			SessionTTL: getDurationEnv("SESSION_TTL", 24*time.Hour),
		},
		Trip: TripConfig{
			FoundDelay:    getDurationEnv("TRIP_FOUND_DELAY", 3*time.Second),
			ArrivedDelay:  getDurationEnv("TRIP_ARRIVED_DELAY", 5*time.Second),
			RidingDelay:   getDurationEnv("TRIP_RIDING_DELAY", 5*time.Second),
			CompleteDelay: getDurationEnv("TRIP_COMPLETE_DELAY", 15*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
