package main

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/media-library/internal/platform/config"
	"github.com/example/media-library/internal/platform/db"
	"github.com/example/media-library/internal/platform/httpserver"
	"github.com/example/media-library/internal/platform/natsconn"
	"github.com/example/media-library/internal/platform/run"
	libraryconfig "github.com/example/media-library/services/library/internal/config"
	"github.com/example/media-library/services/library/internal/grpcapi"
	"github.com/example/media-library/services/library/internal/handlers"
	"github.com/example/media-library/services/library/internal/outbox"
	"github.com/example/media-library/services/library/internal/service"
	"github.com/example/media-library/services/library/internal/store"
)

const readinessInterval = 5 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the library HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		if code := serve(cmd.Context(), cfg, log); code != 0 {
			return exitCode(code)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply the schema before serving")
	rootCmd.AddCommand(serveCmd)
}

// openStores picks Postgres when DATABASE_URL is set and the in-memory store otherwise.
// The in-memory store is refused in production. pool is nil for the in-memory store.
func openStores(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (store.Stores, *pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		if cfg.Production() {
			return store.Stores{}, nil, errors.New("DATABASE_URL is required in production")
		}
		log.Warn("DATABASE_URL not set, using in-memory store")
		return store.NewInMemory().Stores(), nil, nil
	}

	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return store.Stores{}, nil, err
	}
	if migrateOnStart {
		if err := store.Migrate(ctx, pool); err != nil {
			pool.Close()
			return store.Stores{}, nil, err
		}
		log.Info("schema applied")
	}
	return store.NewPostgres(pool).Stores(), pool, nil
}

func serve(ctx context.Context, cfg config.AppConfig, log *zap.Logger) int {
	stores, pool, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("open store", zap.Error(err))
		return 1
	}
	var ready func() error
	if pool != nil {
		defer pool.Close()
		ready = db.Pinger(pool)
	}

	lib := service.New(stores, log)

	r := chi.NewRouter()
	httpserver.SetupRouter(r, httpserver.RouterConfig{
		ReadyFunc:      ready,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         log,
	})
	handlers.Routes(r, lib, log)

	httpSrv := httpserver.New(httpserver.Options{Addr: cfg.HTTP.Addr, Logger: log, Router: r})

	grpcCfg := libraryconfig.LoadGRPC()
	lis, err := net.Listen("tcp", grpcCfg.Addr)
	if err != nil {
		log.Error("listen", zap.String("addr", grpcCfg.Addr), zap.Error(err))
		return 1
	}
	grpcSrv := grpcapi.New(log, ready)

	tasks := []run.Task{
		run.Serve(httpSrv.Start, httpSrv.Shutdown),
		run.Serve(func() error { return grpcSrv.Serve(lis) }, grpcSrv.Shutdown),
		func(ctx context.Context) error { return grpcSrv.WatchReadiness(ctx, readinessInterval) },
	}

	outboxCfg := libraryconfig.LoadOutbox()
	switch {
	case pool == nil:
		log.Info("outbox disabled: in-memory store")
	case !outboxCfg.Enabled:
		log.Info("outbox disabled by OUTBOX_ENABLED")
	default:
		publisher, closeNATS, err := newPublisher(cfg, outboxCfg, pool, log)
		if err != nil {
			log.Error("outbox publisher", zap.Error(err))
			return 1
		}
		defer closeNATS()
		tasks = append(tasks, publisher.Run)
	}

	log.Info("http server starting", zap.String("addr", cfg.HTTP.Addr))
	return run.New(log).WithSignals(tasks...)
}

func newPublisher(cfg config.AppConfig, oc libraryconfig.OutboxConfig, pool *pgxpool.Pool, log *zap.Logger) (*outbox.Publisher, func(), error) {
	nc, err := natsconn.Connect(natsconn.Options{URL: oc.NATSURL, Name: cfg.ServiceName, Logger: log})
	if err != nil {
		return nil, nil, err
	}
	publisher, err := outbox.NewPublisher(log, pool, nc)
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	publisher.BatchSize = oc.BatchSize
	publisher.PollInterval = oc.PollInterval
	return publisher, nc.Close, nil
}
