package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/wfrp-encounter-api/internal/config"
	v1 "github.com/KirkDiggler/wfrp-encounter-api/internal/handlers/api/v1"
)

// HealthServiceName is the gRPC health service reported for the HTTP API
const HealthServiceName = "wfrp.encounter.v1.EncounterAPI"

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API and gRPC health server",
	Long:  `Start the encounter manager HTTP API. A gRPC health service runs alongside it unless its port is 0.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().String("address", "", "HTTP listen address")
	serverCmd.Flags().Int("grpc-port", 0, "gRPC health server port (0 disables)")
	serverCmd.Flags().String("storage", "", "storage backend (file or redis)")
	serverCmd.Flags().String("data-dir", "", "data directory for the file backend")
	serverCmd.Flags().String("redis-address", "", "redis address for the redis backend")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, changedOnly(cmd, flagBindings{
		"server.address":        "address",
		"server.grpc_port":      "grpc-port",
		"storage.backend":       "storage",
		"storage.dir":           "data-dir",
		"storage.redis.address": "redis-address",
	}))
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := seedAll(ctx, a, nil); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := v1.NewRouter(&v1.RouterConfig{
		Weapons:    a.weapons,
		Enemies:    a.enemies,
		Dice:       a.dice,
		Encounters: a.encounters,
		Logger:     a.logger.Named("http"),
	})
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 2)
	go func() {
		a.logger.Info("http server starting", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server failed: %w", err)
		}
	}()

	var grpcServer *grpc.Server
	if cfg.Server.GRPCPort > 0 {
		grpcServer, err = startHealthServer(cfg.Server, a.logger.Named("grpc"), errChan)
		if err != nil {
			_ = httpServer.Close() // nolint:errcheck // already failing
			return err
		}
	}

	select {
	case <-ctx.Done():
		a.logger.Info("received shutdown signal, gracefully stopping")
	case err := <-errChan:
		a.logger.Error("server failed", zap.Error(err))
		shutdown(cfg.Server, a.logger, httpServer, grpcServer)
		return err
	}

	shutdown(cfg.Server, a.logger, httpServer, grpcServer)
	return nil
}

// changedOnly drops bindings for flags the user did not set, so unset flags
// do not mask config file and environment values
func changedOnly(cmd *cobra.Command, bindings flagBindings) flagBindings {
	out := flagBindings{}
	for key, name := range bindings {
		if cmd.Flags().Changed(name) {
			out[key] = name
		}
	}
	return out
}

func startHealthServer(cfg config.ServerConfig, logger *zap.Logger, errChan chan<- error) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(HealthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	go func() {
		logger.Info("grpc health server starting", zap.Int("port", cfg.GRPCPort))
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("grpc server failed: %w", err)
		}
	}()

	return srv, nil
}

func shutdown(cfg config.ServerConfig, logger *zap.Logger, httpServer *http.Server, grpcServer *grpc.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server did not stop cleanly", zap.Error(err))
	}

	if grpcServer == nil {
		return
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("graceful shutdown timeout exceeded, forcing stop")
		grpcServer.Stop()
	case <-stopped:
		logger.Info("server stopped gracefully")
	}
}

// interceptorLogger adapts zap to the go-grpc-middleware logging interface
func interceptorLogger(l *zap.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(_ context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		zapFields := make([]zap.Field, 0, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			zapFields = append(zapFields, zap.Any(fmt.Sprint(fields[i]), fields[i+1]))
		}

		logger := l.WithOptions(zap.AddCallerSkip(1)).With(zapFields...)
		switch lvl {
		case grpc_logging.LevelDebug:
			logger.Debug(msg)
		case grpc_logging.LevelInfo:
			logger.Info(msg)
		case grpc_logging.LevelWarn:
			logger.Warn(msg)
		case grpc_logging.LevelError:
			logger.Error(msg)
		default:
			logger.Info(msg)
		}
	})
}
