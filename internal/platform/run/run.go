package run

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long Serve waits for a component to drain.
const ShutdownTimeout = 10 * time.Second

// Task is a long-running component. It must return once ctx is done.
type Task func(ctx context.Context) error

type Runner struct {
	Logger *zap.Logger
}

func New(log *zap.Logger) *Runner {
	return &Runner{Logger: log}
}

// WithSignals runs every task until SIGINT/SIGTERM or until one of them
// fails, then waits for the rest to stop. It returns the process exit code.
func (r *Runner) WithSignals(tasks ...Task) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return r.run(ctx, tasks...)
}

func (r *Runner) run(ctx context.Context, tasks ...Task) int {
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tasks {
		g.Go(func() error { return t(gctx) })
	}
	err := g.Wait()
	if ctx.Err() != nil {
		r.Logger.Info("shutdown signal received")
	}
	if err == nil || errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
		return 0
	}
	r.Logger.Error("service exited with error", zap.Error(err))
	return 1
}

// Serve turns a blocking start function and its shutdown counterpart into a
// Task. Shutdown gets ShutdownTimeout once ctx is done.
func Serve(start func() error, shutdown func(context.Context) error) Task {
	return func(ctx context.Context) error {
		errc := make(chan error, 1)
		go func() { errc <- start() }()
		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}
		c, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := shutdown(c); err != nil {
			return err
		}
		return <-errc
	}
}

func Exit(code int) {
	os.Exit(code)
}
