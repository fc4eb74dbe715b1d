package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/notify"
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

	workerLog := logger.NewLogger(cfg.Log.Level).With("service", "worker")
	defer workerLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg, workerLog)
	if err != nil {
		workerLog.Fatal("failed to build app", "error", err)
	}
	defer app.Close()

	if len(cfg.Kafka.Brokers) > 0 {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, workerLog)
		defer consumer.Close()

		outbox := notify.NewOutbox(app.Stores.Bookings, app.Renderer, cfg.Worker.TicketDir, workerLog)
		go func() {
			if err := consumer.Consume(ctx, outbox.HandleMessage); err != nil {
				workerLog.Error("consumer stopped", "error", err)
			}
		}()
	} else {
		workerLog.Warn("no kafka brokers configured, ticket outbox disabled")
	}

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.SweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	for {
		select {
		case <-sweepTicker.C:
			deleted, err := app.Throttle.Sweep(ctx)
			if err != nil {
				workerLog.Error("attempt sweep failed", "error", err)
				continue
			}
			if deleted > 0 {
				workerLog.Info("swept idle attempt logs", "deleted", deleted)
			}
		case <-ctx.Done():
			workerLog.Info("shutting down")
			return
		}
	}
}
