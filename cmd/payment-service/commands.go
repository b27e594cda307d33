package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-mpesa-service/internal/app/background"
	"github.com/LavaJover/shvark-mpesa-service/internal/app/setup"
	"github.com/LavaJover/shvark-mpesa-service/internal/config"
	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-mpesa-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-mpesa-service/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "payment-service",
		Short:        "M-Pesa STK push payments and callback reconciliation",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var runMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health listener",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			slog.SetDefault(logger.New(cfg.LogConfig))
			return serve(cmd.Context(), cfg, runMigrations)
		},
	}
	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var rollbackSteps int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			slog.SetDefault(logger.New(cfg.LogConfig))

			db, err := postgres.InitDB(cfg.PaymentDB.Dsn)
			if err != nil {
				return err
			}
			if rollbackSteps > 0 {
				return migrate.RollbackMigrations(db, cfg.PaymentDB.MigrationsPath, rollbackSteps)
			}
			return migrate.RunMigrations(db, cfg.PaymentDB.MigrationsPath)
		},
	}
	cmd.Flags().IntVar(&rollbackSteps, "down", 0, "roll back this many migrations instead of applying")
	return cmd
}

func serve(parent context.Context, cfg *config.PaymentConfig, runMigrations bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	warnOnRiskyConfig(cfg)

	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	if runMigrations {
		if err := migrate.RunMigrations(deps.DB, cfg.PaymentDB.MigrationsPath); err != nil {
			return err
		}
	}

	useCases := setup.InitializeUseCases(deps)
	defer useCases.PaymentUsecase.Wait()

	router := handlers.NewRouter(
		handlers.NewPaymentHandler(useCases.PaymentUsecase),
		deps.Repositories.AccessTokenRepo,
		deps.Registry,
	)
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	healthServer := grpcapi.NewHealthServer()
	grpcServer := grpcapi.NewServer(healthServer)
	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return err
	}
	background.NewBackgroundTasks(sqlDB, healthServer).StartAll(ctx)

	errCh := make(chan error, 2)
	go func() {
		slog.Info("grpc health listener started", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		slog.Info("http server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err = <-errCh:
		slog.Error("server failed", "error", err.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Error("http shutdown failed", "error", shutdownErr.Error())
	}
	grpcServer.GracefulStop()

	return err
}

func warnOnRiskyConfig(cfg *config.PaymentConfig) {
	if cfg.Mpesa.UnauthenticatedCallbacks() {
		slog.Warn("MPESA_CALLBACK_SECRET is not set in production; callbacks are accepted without authentication")
	}
	if cfg.Mpesa.Enabled && !cfg.Mpesa.IsConfigured() {
		slog.Warn("M-Pesa is enabled but incomplete; STK pushes will fail until credentials are set")
	}
}
