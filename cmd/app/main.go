package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/pkg/logger"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog := logger.NewLogger(cfg.Log.Level)
	defer appLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, appLog)
	if err != nil {
		appLog.Fatal("failed to build app", "error", err)
	}
	defer app.Close()

	if err := app.Seed(ctx); err != nil {
		appLog.Fatal("failed to seed data", "error", err)
	}

	if err := bootstrap.Run(ctx, cfg, bootstrap.RouterDeps{
		Flights:  api.NewFlightHandler(app.Flights, app.Airports, appLog.With("component", "api")),
		Bookings: api.NewBookingHandler(app.Bookings, appLog.With("component", "api")),
		Metrics:  app.Metrics,
		Gatherer: app.Registry,
		Log:      appLog,
	}); err != nil {
		appLog.Fatal("server error", "error", err)
	}
}
