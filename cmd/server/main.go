package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpadapter "devb-web/internal/adapter/http"
	repo "devb-web/internal/adapter/repository"
	"devb-web/internal/banner"
	"devb-web/internal/config"
	"devb-web/internal/infrastructure/migration"
	"devb-web/internal/scheduler"
	"devb-web/internal/usecase"
	"devb-web/internal/validator"
	infra "devb-web/pkg/infrastructure"
	"devb-web/pkg/profileapi"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config: load failed", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.Server.LogLevel)}))
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings() {
		logger.Warn("config: " + w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stateDB, err := repo.OpenStateDB(cfg.Storage.StateDBPath)
	if err != nil {
		logger.Error("storage: open state db failed", "path", cfg.Storage.StateDBPath, "error", err)
		os.Exit(1)
	}
	defer stateDB.Close()

	// resume records are optional
	jobsPool, err := infra.NewJobsPool(ctx, cfg.Storage.JobsDatabaseURL)
	if err != nil {
		logger.Warn("storage: jobs DB not available", "error", err)
	}
	if jobsPool != nil {
		defer jobsPool.Close()
		if err := migration.RunMigrations(ctx, jobsPool, logger); err != nil {
			logger.Warn("storage: migrations failed", "error", err)
		}
	}

	client := profileapi.NewClient(cfg.API, logger)
	renderer := infra.NewChromedpRenderer(cfg.Renderer.ChromePath, cfg.Renderer.Timeout)
	resumes := usecase.NewResumeService(client, renderer, repo.NewResumesRepo(jobsPool, logger), cfg.Renderer.Attempts, logger)

	validators := validator.NewRegistry(client, validator.Options{Debounce: cfg.Validator.Debounce}, cfg.Validator.SessionIdle, logger)
	defer validators.Close()

	sched := scheduler.New(logger)
	if err := sched.Add(
		scheduler.Job{Name: "purge-response-cache", Schedule: "@every 5m", Run: client.Cache().Purge},
		scheduler.Job{Name: "sweep-validator-sessions", Schedule: "@every 1m", Run: validators.Sweep},
	); err != nil {
		logger.Error("scheduler: setup failed", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	h := httpadapter.NewHandler(client, resumes, validators, func(visitorID string) banner.Storage {
		return stateDB.ForVisitor(visitorID)
	}, logger)
	app := httpadapter.NewApp(h)

	go func() {
		logger.Info("server: listening", "port", cfg.Server.Port)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logger.Error("server: listen failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("server: shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("server: shutdown", "error", err)
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
