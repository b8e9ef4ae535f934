// Package config loads runtime settings from a .env file and the process
// environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Port string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	LogLevel  string
	LogFormat string

	// QuotaLimit is the lifetime ceiling of workings per user.
	QuotaLimit int
	// Timezone is the reference zone for data_time and ending-date checks.
	Timezone string

	WagePublicHolidays  int
	WageAnnualLeaveDays int

	RateLimitPerMinute int
	CompanyCacheTTL    time.Duration
}

// Load reads .env (if present) and then the environment. Missing keys fall
// back to defaults.
func Load() (*Config, error) {
	// a missing .env is not an error
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:                normalizePort(v.GetString("PORT")),
		MongoURI:            v.GetString("MONGO_URI"),
		MongoDatabase:       v.GetString("MONGO_DATABASE"),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           v.GetString("LOG_FORMAT"),
		QuotaLimit:          v.GetInt("QUOTA_LIMIT"),
		Timezone:            v.GetString("TIMEZONE"),
		WagePublicHolidays:  v.GetInt("WAGE_PUBLIC_HOLIDAYS"),
		WageAnnualLeaveDays: v.GetInt("WAGE_ANNUAL_LEAVE_DAYS"),
		RateLimitPerMinute:  v.GetInt("RATE_LIMIT_PER_MINUTE"),
		CompanyCacheTTL:     v.GetDuration("COMPANY_CACHE_TTL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", ":8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "goodjob")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("QUOTA_LIMIT", 5)
	v.SetDefault("TIMEZONE", "Asia/Taipei")
	v.SetDefault("WAGE_PUBLIC_HOLIDAYS", 12)
	v.SetDefault("WAGE_ANNUAL_LEAVE_DAYS", 7)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 10)
	v.SetDefault("COMPANY_CACHE_TTL", 10*time.Minute)
}

// Validate checks for critical configuration errors.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.QuotaLimit <= 0 {
		return fmt.Errorf("QUOTA_LIMIT must be positive, got %d", c.QuotaLimit)
	}
	if c.WagePublicHolidays < 0 || c.WageAnnualLeaveDays < 0 {
		return fmt.Errorf("wage holiday settings must not be negative")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	return nil
}

// Location resolves Timezone, falling back to UTC when the zone is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func normalizePort(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] != ':' {
		return ":" + port
	}
	return port
}
