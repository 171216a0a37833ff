package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/carbooking/api"
	"github.com/Domenick1991/carbooking/config"
	"github.com/Domenick1991/carbooking/internal/auth"
	"github.com/Domenick1991/carbooking/internal/bootstrap"
	"github.com/Domenick1991/carbooking/internal/cache"
	"github.com/Domenick1991/carbooking/internal/kafka"
	"github.com/Domenick1991/carbooking/internal/repository"
	"github.com/Domenick1991/carbooking/internal/service/booking"
	"github.com/Domenick1991/carbooking/internal/service/cars"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
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

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Listing.RecentCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer func() { _ = producer.Close() }()

	carRepo := repository.NewCarRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	carService := cars.NewCarService(carRepo, redisCache, cars.WithStrictUpdates(cfg.Listing.StrictUpdates))
	bookingService := booking.NewBookingService(bookingRepo, redisCache, producer, cfg.Kafka.BookingEventsTopic, logger)

	manager := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLDays)*24*time.Hour)

	handlers := bootstrap.Handlers{
		Sessions: api.NewSessionHandler(manager, cfg.Auth),
		Cars:     api.NewCarHandler(carService),
		Bookings: api.NewBookingHandler(bookingService),
		Gate:     auth.RequireAuth(manager),
	}

	if err := bootstrap.Run(ctx, cfg, logger, handlers); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Auth.Production() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
