package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/maksym-ppt/skins-price-alert/internal/app"
	"github.com/maksym-ppt/skins-price-alert/internal/config"
)

func main() {
	// A local .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize app:", err)
		os.Exit(1)
	}
	defer application.Shutdown()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "application error:", err)
		os.Exit(1)
	}
}
