// Package main runs the interactive shopping cart.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/shopcart/internal/app"
	"github.com/abgdnv/shopcart/internal/config"
	"github.com/abgdnv/shopcart/internal/platform/bootstrap"
	"github.com/abgdnv/shopcart/internal/platform/contextkeys"
	"github.com/google/uuid"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		stop()
		os.Exit(1)
	}
}

// run loads the configuration, wires the shop and runs the menu on the standard streams.
func run(ctx context.Context) error {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}

	logOutput, closeLog, err := bootstrap.OpenLogOutput(cfg.Log.File, os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			log.Printf("failed to close log output: %v", err)
		}
	}()
	logger := bootstrap.NewLogger(cfg.Log.Level, logOutput)
	slog.SetDefault(logger)

	ctx = contextkeys.WithSessionID(ctx, uuid.NewString())
	logger.DebugContext(ctx, "Configuration loaded", "config", cfg.String())

	deps := app.SetupDependencies(cfg, logger)
	menu := app.SetupMenu(deps, cfg, os.Stdin, os.Stdout, os.Stderr)

	logger.InfoContext(ctx, "Shop session started")
	if err := menu.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("menu failed: %w", err)
	}
	logger.InfoContext(ctx, "Shop session ended")
	return nil
}
