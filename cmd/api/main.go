package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jalvarez-dev/employee-gateway/api/routes"
	"github.com/jalvarez-dev/employee-gateway/internal/employees"
	"github.com/jalvarez-dev/employee-gateway/pkg/config"
	"github.com/jalvarez-dev/employee-gateway/pkg/logger"
	"github.com/jalvarez-dev/employee-gateway/pkg/retry"
	"github.com/jalvarez-dev/employee-gateway/pkg/upstream"
)

const shutdownGrace = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "employee-gateway"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "employee-gateway",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	executor, err := retry.NewExecutor(retry.Policy{
		MaxAttempts: cfg.Upstream.MaxAttempts,
		Delay:       cfg.Upstream.RetryDelay,
	}, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build retry executor", err)
		os.Exit(1)
	}

	client, err := upstream.NewClient(cfg.Upstream, executor, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build upstream client", err)
		os.Exit(1)
	}

	employeeService, err := employees.NewService(client)
	if err != nil {
		logg.Error(context.Background(), "failed to create employee service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	baseCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx := logg.WithFields(baseCtx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"upstream": cfg.Upstream.BaseURL,
	})
	logg.Info(ctx, "starting employee gateway")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, employeeService),
		BaseContext: func(net.Listener) context.Context {
			return baseCtx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "gateway stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-baseCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
