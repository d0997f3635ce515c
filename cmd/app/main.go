package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"jobdispatch/cmd"
	httpadapter "jobdispatch/internal/adapters/in/http"

	"github.com/labstack/gommon/log"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		logger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	db, err := openDatabase(configs, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		return err
	}

	server, err := app.CreateHTTPServer()
	if err != nil {
		return err
	}
	e, err := httpadapter.NewRouter(ctx, server, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", configs.HTTPPort)
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()

	shutdownErr := ignoreServerClosed(e.Shutdown(shutdownCtx))
	jobManager.StopAll()
	return errors.Join(shutdownErr, app.Close(shutdownCtx), ignoreServerClosed(err))
}

func ignoreServerClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
