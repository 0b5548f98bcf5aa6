package main

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/example/media-library/internal/platform/config"
)

func TestOpenStores_InMemoryWithoutDatabaseURL(t *testing.T) {
	st, pool, err := openStores(context.Background(), config.AppConfig{Env: "development"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool != nil {
		t.Fatal("expected no pool for the in-memory store")
	}
	if st.Movies == nil || st.Ratings == nil {
		t.Fatal("expected populated stores")
	}
}

func TestOpenStores_ProductionRequiresDatabase(t *testing.T) {
	if _, _, err := openStores(context.Background(), config.AppConfig{Env: "production"}, zap.NewNop()); err == nil {
		t.Fatal("expected error in production without DATABASE_URL")
	}
}

func TestSetup_DefaultsServiceName(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("LOG_LEVEL", "debug")
	envFiles = []string{t.TempDir() + "/missing.env"}
	defer func() { envFiles = nil }()

	cfg, log, err := setup()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.ServiceName != "library" || log == nil {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestServeCommand_ReturnsExitCode(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "")
	envFiles = []string{t.TempDir() + "/missing.env"}
	defer func() { envFiles = nil }()

	serveCmd.SetContext(context.Background())
	err := serveCmd.RunE(serveCmd, nil)

	var code exitCode
	if !errors.As(err, &code) || code != 1 {
		t.Fatalf("expected exit code 1 as an error, got %v", err)
	}
}
