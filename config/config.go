package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AdminJWTSecret    string `mapstructure:"ADMIN_JWT_SECRET"`

	// Booking data backend (the REST API the widget reads availability from).
	BookingAPIBase string `mapstructure:"BOOKING_API_BASE"`
	BookingAPIKey  string `mapstructure:"BOOKING_API_KEY"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisTaskDB    int    `mapstructure:"REDIS_TASK_DB"`

	// Mongo order archive.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Stripe deposit payments.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Availability snapshot cache TTL, in minutes.
	SnapshotTTLMinutes int `mapstructure:"SNAPSHOT_TTL_MINUTES"`
	// Wizard session TTL, in minutes.
	SessionTTLMinutes int `mapstructure:"SESSION_TTL_MINUTES"`

	// Display formats handed to the formatter (internal formats are fixed).
	Timezone   string `mapstructure:"TIMEZONE"`
	DateFormat string `mapstructure:"DATE_FORMAT"`
	TimeFormat string `mapstructure:"TIME_FORMAT"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ADMIN_JWT_SECRET", "")
	viper.SetDefault("BOOKING_API_BASE", "http://localhost:8090/api/v1")
	viper.SetDefault("BOOKING_API_KEY", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_TASK_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("SNAPSHOT_TTL_MINUTES", 10)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("TIMEZONE", "UTC")
	viper.SetDefault("DATE_FORMAT", "January 2, 2006")
	viper.SetDefault("TIME_FORMAT", "3:04 pm")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Location resolves the configured timezone, falling back to UTC.
func Location() *time.Location {
	loc, err := time.LoadLocation(AppConfig.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SnapshotTTL returns the availability snapshot cache TTL.
func SnapshotTTL() time.Duration {
	return time.Duration(AppConfig.SnapshotTTLMinutes) * time.Minute
}

// SessionTTL returns the wizard session TTL.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMinutes) * time.Minute
}
