package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/fairway-bot/app"
	"github.com/Black-And-White-Club/fairway-bot/config"
	"github.com/Black-And-White-Club/fairway-bot/internal/observability"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := observability.Init(ctx, observability.Config{
		ServiceName:  "fairway-bot",
		Environment:  cfg.Observability.Environment,
		LogLevel:     cfg.Observability.LogLevel,
		OTLPEndpoint: cfg.Observability.OTLPEndpoint,
		OTLPInsecure: cfg.Observability.OTLPInsecure,
		SampleRate:   cfg.Observability.SampleRate,
	})
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			obs.Logger.Error("Observability shutdown failed", "error", err)
		}
	}()

	var application app.App
	if err := application.Initialize(ctx, cfg, obs); err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		obs.Logger.Error("Application exited with error", "error", err)
	}
}
