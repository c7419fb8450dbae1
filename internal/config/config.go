package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                 string
	Environment          string
	AIDepth              int
	AITimeout            time.Duration
	SessionTTL           time.Duration
	SessionSecret        string
	AllowedOrigins       []string
	FrontendURL          string
	RedisURL             string
	RedisPassword        string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("../.env")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("AI_DEPTH", 3)
	v.SetDefault("AI_TIMEOUT_SECONDS", 10)
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("SESSION_SECRET", "change-this-session-secret")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	frontendURL := v.GetString("FRONTEND_URL")

	// Frontend URL is always allowed, extra origins come as CSV
	allowedOrigins := []string{frontendURL}
	for _, origin := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	depth := v.GetInt("AI_DEPTH")
	if depth < 1 {
		depth = 3
	}

	return &Config{
		Port:                 v.GetString("PORT"),
		Environment:          v.GetString("ENVIRONMENT"),
		AIDepth:              depth,
		AITimeout:            time.Duration(v.GetInt("AI_TIMEOUT_SECONDS")) * time.Second,
		SessionTTL:           time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		SessionSecret:        v.GetString("SESSION_SECRET"),
		AllowedOrigins:       allowedOrigins,
		FrontendURL:          frontendURL,
		RedisURL:             v.GetString("REDIS_URL"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		DatabaseURL:          v.GetString("DATABASE_URL"),
		DBMaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetimeMin: v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES"),
	}
}
