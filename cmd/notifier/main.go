package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tair/shop-tracker/internal/calc"
	"github.com/tair/shop-tracker/internal/config"
	"github.com/tair/shop-tracker/kafka"
	"github.com/tair/shop-tracker/pkg/logger"
	"github.com/tair/shop-tracker/pkg/tracing"
)

// The notifier consumes reminder and order events from Kafka and surfaces
// them to the shop owner. Delivery is a structured log line for now; a mail
// or push integration plugs into the same handlers.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	serviceName := cfg.App.Name + "-notifier"
	logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.App.LogLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", cfg.App.Environment).
		Msg("Starting notifier")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	brokers := cfg.KafkaBrokers()
	if len(brokers) == 0 {
		logger.Logger.Fatal().Msg("KAFKA_BROKERS must be set for the notifier")
	}

	consumer, err := kafka.NewConsumer(
		brokers,
		cfg.Kafka.GroupID,
		[]string{kafka.TopicOrderEvents, kafka.TopicOrderReminders},
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	consumer.RegisterReminderHandler(func(ctx context.Context, event kafka.ReminderEvent) error {
		logger.WithContext(ctx).Info().
			Uint("order_id", event.OrderID).
			Uint("owner_id", event.OwnerID).
			Time("order_date", event.OrderDate).
			Msg("Payment still pending for order, reminder sent")
		return nil
	})

	consumer.RegisterHandler(kafka.EventTypeOrderCreated, func(ctx context.Context, event kafka.OrderEvent) error {
		logger.WithContext(ctx).Info().
			Uint("order_id", event.OrderID).
			Uint("owner_id", event.OwnerID).
			Str("status", event.Status).
			Str("total", calc.FormatCurrency(event.TotalRevenue)).
			Msg("New order recorded")
		return nil
	})

	consumer.RegisterHandler(kafka.EventTypeOrderStatusChanged, func(ctx context.Context, event kafka.OrderEvent) error {
		logger.WithContext(ctx).Info().
			Uint("order_id", event.OrderID).
			Uint("owner_id", event.OwnerID).
			Str("status", event.Status).
			Msg("Order status changed")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down notifier...")
}
