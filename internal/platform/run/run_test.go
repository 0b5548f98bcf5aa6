package run

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/zap"
)

func TestRun_FailingTaskStopsOthers(t *testing.T) {
	r := New(zap.NewNop())
	stopped := make(chan struct{})

	code := r.run(context.Background(),
		func(ctx context.Context) error {
			<-ctx.Done()
			close(stopped)
			return nil
		},
		func(context.Context) error { return errors.New("boom") },
	)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	select {
	case <-stopped:
	default:
		t.Fatal("expected the healthy task to be cancelled")
	}
}

func TestRun_CancelledContextExitsClean(t *testing.T) {
	r := New(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := r.run(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
}

func TestServe_ShutdownOnCancel(t *testing.T) {
	release := make(chan struct{})
	shutdownCalled := false
	task := Serve(
		func() error {
			<-release
			return http.ErrServerClosed
		},
		func(context.Context) error {
			shutdownCalled = true
			close(release)
			return nil
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := task(ctx)
	if !shutdownCalled {
		t.Fatal("expected shutdown to be called")
	}
	if !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed from start, got %v", err)
	}
}

func TestServe_StartError(t *testing.T) {
	task := Serve(
		func() error { return errors.New("listen failed") },
		func(context.Context) error { t.Fatal("shutdown must not run"); return nil },
	)
	if err := task(context.Background()); err == nil {
		t.Fatal("expected start error")
	}
}
