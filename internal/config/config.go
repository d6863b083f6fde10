package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	Port        string
	DatabaseURL string
	RedisURL    string // optional; empty disables the health marker
	JWTSecret   string
	TokenTTL    time.Duration
	FrontendURL string // allowed CORS origin
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" && viper.GetString("DATABASE_URL_TEST") != "" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	ttlMinutes := viper.GetInt("TOKEN_TTL_MINUTES")
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}

	frontend := viper.GetString("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	return &Config{
		Env:         env,
		Port:        port,
		DatabaseURL: dbURL,
		RedisURL:    viper.GetString("REDIS_URL"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		TokenTTL:    time.Duration(ttlMinutes) * time.Minute,
		FrontendURL: frontend,
	}, nil
}
