package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/platform/metrics"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/status"
)

type Server struct {
	grpcServer      *grpc.Server
	log             logger.Logger
	port            string
	timeoutGraceful time.Duration
}

func NewServer(
	log logger.Logger,
	m *metrics.MetricsManager,
	port string,
	timeoutGraceful time.Duration,
	maxConnectionIdle time.Duration,
	cartService CartServiceServer,
) *Server {
	serverOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(LoggingInterceptor(log, m)),
	}
	if maxConnectionIdle > 0 {
		serverOpts = append(serverOpts, grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     maxConnectionIdle,
			Timeout:               20 * time.Second,
			MaxConnectionAge:      maxConnectionIdle,
			Time:                  maxConnectionIdle,
			MaxConnectionAgeGrace: 5 * time.Second,
		}))
	}

	grpcServer := grpc.NewServer(serverOpts...)

	if cartService != nil {
		RegisterCartServiceServer(grpcServer, cartService)
	}

	return &Server{
		grpcServer:      grpcServer,
		log:             log,
		port:            port,
		timeoutGraceful: timeoutGraceful,
	}
}

func (s *Server) Start() error {
	s.log.Infof("gRPC server is starting on port %s", s.port)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", s.port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", s.port, err)
	}
	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	if err := s.grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("gRPC server failed to serve: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("gRPC server is stopping gracefully")

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		s.log.Warnf("graceful shutdown timed out, forcing stop")
		s.grpcServer.Stop()
		return ctx.Err()
	case <-stopped:
		s.log.Info("gRPC server stopped gracefully")
		return nil
	}
}

// LoggingInterceptor logs every unary call and records its latency.
func LoggingInterceptor(log logger.Logger, m *metrics.MetricsManager) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		started := time.Now()

		resp, err := handler(ctx, req)

		code := status.Code(err)
		m.ObserveRequest("grpc", info.FullMethod, code.String(), started)
		if err != nil {
			log.Errorw("gRPC request failed",
				"method", info.FullMethod,
				"duration", time.Since(started),
				"status_code", code.String(),
				"error", err,
			)
		} else {
			log.Infow("gRPC request completed",
				"method", info.FullMethod,
				"duration", time.Since(started),
				"status_code", code.String(),
			)
		}
		return resp, err
	}
}
