package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/media-library/internal/platform/config"
	"github.com/example/media-library/internal/platform/logging"
	"github.com/example/media-library/internal/platform/run"
)

var rootCmd = &cobra.Command{
	Use:           "library",
	Short:         "library is a media catalog service",
	Long:          `Catalog of ratings, genres, languages, persons, movies and TV shows over HTTP/JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var envFiles []string

// exitCode is returned by commands whose failure was already logged.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

// setup loads .env files, the shared config and a logger tagged with the service name.
func setup() (config.AppConfig, *zap.Logger, error) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return config.AppConfig{}, nil, fmt.Errorf("load env: %w", err)
	}
	cfg, err := config.Load("library")
	if err != nil {
		return config.AppConfig{}, nil, err
	}
	log, err := logging.New(cfg.LogLevel,
		zap.String("service", cfg.ServiceName),
		zap.String("env", cfg.Env),
	)
	if err != nil {
		return config.AppConfig{}, nil, err
	}
	return cfg, log, nil
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv file(s) to load (default .env)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			run.Exit(int(code))
		}
		fmt.Fprintln(os.Stderr, err)
		run.Exit(1)
	}
}
