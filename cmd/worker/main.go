package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/carbooking/config"
	"github.com/Domenick1991/carbooking/internal/kafka"
	"go.uber.org/zap"
)

// The worker tails the booking events topic and writes an audit log of
// every lifecycle transition.
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic)
	defer consumer.Close()

	if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
		logger.Info("booking event",
			zap.String("type", event.Type),
			zap.String("reference", event.Reference),
			zap.Int64("booking_id", event.BookingID),
			zap.Int64("car_id", event.CarID),
			zap.String("email", event.Email),
			zap.String("status", event.Status),
			zap.Time("at", event.At))
		return nil
	}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", zap.Error(err))
	}
}
