package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/securitylake"
	"github.com/lmittmann/tint"

	"lakewatch/internal/app"
	"lakewatch/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.SlogLevel(),
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return err
	}

	application := app.New(app.Deps{
		Cfg:          cfg,
		Athena:       athena.NewFromConfig(awsCfg),
		Glue:         glue.NewFromConfig(awsCfg),
		SecurityLake: securitylake.NewFromConfig(awsCfg),
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			"addr", cfg.ListenAddr,
			"region", cfg.Region,
			"database", cfg.Database,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
