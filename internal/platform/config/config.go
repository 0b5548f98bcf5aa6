package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type HTTPConfig struct {
	Addr string
}

type AppConfig struct {
	ServiceName string
	Env         string
	LogLevel    string
	DatabaseURL string
	HTTP        HTTPConfig
	// CORSAllowedOrigins is the raw comma separated CORS_ALLOWED_ORIGINS value.
	CORSAllowedOrigins string
}

// Production reports whether APP_ENV selects a production deployment.
func (c AppConfig) Production() bool {
	return c.Env == "production" || c.Env == "prod"
}

// LoadDotEnv loads variables from the given files (default ".env") into the
// process environment. Variables already set win. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load reads the shared settings from the environment. defaultService is used
// when SERVICE_NAME is unset.
func Load(defaultService string) (AppConfig, error) {
	cfg := AppConfig{
		ServiceName: strings.TrimSpace(os.Getenv("SERVICE_NAME")),
		Env:         strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))),
		LogLevel:    strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTP: HTTPConfig{
			Addr: strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		},
		CORSAllowedOrigins: strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultService
	}
	if cfg.ServiceName == "" {
		return AppConfig{}, errors.New("SERVICE_NAME is required")
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
