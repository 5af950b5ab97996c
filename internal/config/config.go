package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Report    ReportConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// RateLimitConfig applies per user. Export requests are limited
// separately because each one walks the whole snapshot.
type RateLimitConfig struct {
	Requests       int
	Duration       int
	ExportRequests int
	ExportDuration int
}

type LogConfig struct {
	Level       string
	Development bool
}

type ReportConfig struct {
	Title         string
	Timezone      string
	DefaultPeriod string
	SnapshotTTL   time.Duration
	MaxSnapshots  int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "farmstore-admin")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "farmstore")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Africa/Nairobi")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("EXPORT_RATE_LIMIT_REQUESTS", 5)
	viper.SetDefault("EXPORT_RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_DEVELOPMENT", false)
	viper.SetDefault("REPORT_TITLE", "Orders Report")
	viper.SetDefault("REPORT_TIMEZONE", "Africa/Nairobi")
	viper.SetDefault("REPORT_DEFAULT_PERIOD", "monthly")
	viper.SetDefault("REPORT_SNAPSHOT_TTL_SECONDS", 300)
	viper.SetDefault("REPORT_MAX_SNAPSHOTS", 256)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests:       viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration:       viper.GetInt("RATE_LIMIT_DURATION"),
			ExportRequests: viper.GetInt("EXPORT_RATE_LIMIT_REQUESTS"),
			ExportDuration: viper.GetInt("EXPORT_RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:       viper.GetString("LOG_LEVEL"),
			Development: viper.GetBool("LOG_DEVELOPMENT"),
		},
		Report: ReportConfig{
			Title:         viper.GetString("REPORT_TITLE"),
			Timezone:      viper.GetString("REPORT_TIMEZONE"),
			DefaultPeriod: viper.GetString("REPORT_DEFAULT_PERIOD"),
			SnapshotTTL:   time.Duration(viper.GetInt("REPORT_SNAPSHOT_TTL_SECONDS")) * time.Second,
			MaxSnapshots:  viper.GetInt("REPORT_MAX_SNAPSHOTS"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
