package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm/logger"
)

// DBConfig holds database configuration
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	SigningKey   string
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// AdminConfig holds the seeded admin account. Seeding is skipped when
// Password is empty or a user already exists.
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Config holds all configuration
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Session SessionConfig
	Upload  UploadConfig
	Admin   AdminConfig
	LogLevel string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		DB: DBConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", "photostudio"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Session: SessionConfig{
			SigningKey:   getEnv("SESSION_SIGNING_KEY", "change-me-in-production"),
			TTL:          getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "studio_session"),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Upload: UploadConfig{
			Dir:      getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes: int64(getEnvAsInt("UPLOAD_MAX_BYTES", 16*1024*1024)),
		},
		Admin: AdminConfig{
			Name:     getEnv("DEFAULT_ADMIN_NAME", "Admin User"),
			Email:    getEnv("DEFAULT_ADMIN_EMAIL", "admin@benjomoments.com"),
			Password: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	switch getEnv(key, "") {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
