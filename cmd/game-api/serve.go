package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/merev/ds-darts-engine/internal/config"
	"github.com/merev/ds-darts-engine/internal/database"
	"github.com/merev/ds-darts-engine/internal/game"
	apphttp "github.com/merev/ds-darts-engine/internal/http"
	"github.com/merev/ds-darts-engine/internal/storage"
)

type ServeCmd struct {
	Config   string `short:"c" default:"game-api.hcl" help:"HCL config file (optional)"`
	Port     string `help:"Override the listen port"`
	Store    string `help:"Override the store backend (postgres or sqlite)"`
	LogLevel string `help:"Override the log level"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Port != "" {
		cfg.Port = c.Port
	}
	if c.Store != "" {
		cfg.Store = c.Store
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "game-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := game.NewService(store, quartz.NewReal(), logger)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apphttp.NewRouter(game.NewHandler(svc, cfg.RequestTimeout)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("game-api running", "port", cfg.Port, "store", cfg.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down game-api...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Config, logger *log.Logger) (game.Store, func(), error) {
	if cfg.Store == config.StoreSQLite {
		s, err := storage.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return s, func() { s.Close() }, nil
	}

	db, err := database.NewPool(cfg.DBDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	mctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := database.Migrate(mctx, db, logger); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migration failed: %w", err)
	}
	return game.NewRepository(db), db.Close, nil
}
