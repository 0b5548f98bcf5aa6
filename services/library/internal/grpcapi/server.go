// Package grpcapi serves the library's gRPC operations surface: the standard
// health service, kept in step with storage reachability, and reflection.
package grpcapi

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// ServiceName is the health-checked service name besides the overall "" entry.
const ServiceName = "library"

type Server struct {
	GRPC   *grpc.Server
	Health *health.Server
	log    *zap.Logger
	ready  func() error
}

// New builds the server. ready reports storage reachability; nil means always ready.
func New(log *zap.Logger, ready func() error) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		recoverUnary(log),
		logUnary(log),
	))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	s := &Server{GRPC: srv, Health: hs, log: log, ready: ready}
	s.check()
	return s
}

func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc server starting", zap.String("addr", lis.Addr().String()))
	return s.GRPC.Serve(lis)
}

// Shutdown drains in-flight calls, forcing a stop when ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Health.Shutdown()
	stopped := make(chan struct{})
	go func() {
		s.GRPC.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		s.GRPC.Stop()
	}
	return nil
}

// WatchReadiness re-evaluates readiness every interval until ctx is done.
func (s *Server) WatchReadiness(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.check()
		}
	}
}

func (s *Server) check() {
	st := healthpb.HealthCheckResponse_SERVING
	if s.ready != nil {
		if err := s.ready(); err != nil {
			s.log.Warn("readiness check failed", zap.Error(err))
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.Health.SetServingStatus("", st)
	s.Health.SetServingStatus(ServiceName, st)
}

func recoverUnary(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if v := recover(); v != nil {
				log.Error("grpc panic recovered", zap.Any("panic", v), zap.String("method", info.FullMethod), zap.Stack("stack"))
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

func logUnary(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Debug("grpc call",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}
