package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"postboard/config"
	"postboard/internal/app"
	"postboard/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Error("init app", "error", err)
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		log.Error("app stopped", "error", err)
		os.Exit(1)
	}
	log.Info("app stopped")
}
