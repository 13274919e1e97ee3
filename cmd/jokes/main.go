package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/hasi/internal/app"
	"github.com/Adda-Baaj/hasi/internal/config"
	"github.com/Adda-Baaj/hasi/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "jokes start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("jokes starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jokes, err := app.New(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize jokes app", "error", err)
		return err
	}

	if err := jokes.Run(ctx); err != nil {
		return fmt.Errorf("jokes run: %w", err)
	}

	return nil
}
