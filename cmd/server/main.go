package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/tair/shop-tracker/internal/config"
	"github.com/tair/shop-tracker/internal/feed"
	"github.com/tair/shop-tracker/internal/order"
	orderhttp "github.com/tair/shop-tracker/internal/order/delivery/http"
	orderdomain "github.com/tair/shop-tracker/internal/order/domain"
	orderrepo "github.com/tair/shop-tracker/internal/order/repository"
	"github.com/tair/shop-tracker/internal/product"
	producthttp "github.com/tair/shop-tracker/internal/product/delivery/http"
	productdomain "github.com/tair/shop-tracker/internal/product/domain"
	"github.com/tair/shop-tracker/internal/reminder"
	"github.com/tair/shop-tracker/kafka"
	"github.com/tair/shop-tracker/pkg/auth"
	"github.com/tair/shop-tracker/pkg/cache"
	"github.com/tair/shop-tracker/pkg/database"
	"github.com/tair/shop-tracker/pkg/logger"
	"github.com/tair/shop-tracker/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	logger.Init(cfg.App.Name, cfg.IsDevelopment())
	logger.SetLevel(cfg.App.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.App.Name).
		Str("environment", cfg.App.Environment).
		Str("log_level", cfg.App.LogLevel).
		Msg("Starting shop tracker server")

	if cfg.JWT.Secret != "" {
		auth.SetSecret(cfg.JWT.Secret)
	}

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.App.Name)
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

	// Connect to database
	dbConfig := database.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&productdomain.Product{}, &orderdomain.Order{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional Redis read cache
	var readCache *cache.Cache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Redis unreachable, caching disabled")
		} else {
			readCache = cache.New(redisClient, 30*time.Second)
			logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache enabled")
		}
	}

	// Optional Kafka publisher
	var publisher *kafka.Publisher
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		publisher, err = kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unreachable, events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Order snapshot feed
	hub := feed.NewHub()

	// Unpaid-order reminder scheduling, fed by order snapshots
	manager := reminder.NewManager(func(n reminder.Notification) {
		logger.Logger.Info().
			Uint("owner_id", n.OwnerID).
			Uint("order_id", n.Order.ID).
			Time("order_date", n.Order.Date).
			Msg("Unpaid order reminder due")

		if publisher != nil {
			event := kafka.ReminderEvent{
				OrderID:   n.Order.ID,
				OwnerID:   n.OwnerID,
				OrderDate: n.Order.Date,
			}
			if err := publisher.PublishReminderEvent(context.Background(), event); err != nil {
				logger.Logger.Error().Err(err).Uint("order_id", n.Order.ID).Msg("Failed to publish reminder")
			}
		}
	})
	defer manager.Close()

	hub.Subscribe(func(snapshot feed.OrderSnapshot) {
		manager.Apply(snapshot.OwnerID, snapshot.Orders)
	})

	// Arm reminders for unpaid orders that existed before this process started
	warmUpReminders(orderrepo.NewGormOrderRepository(db), manager)

	// Expose active reminder timers as a gauge
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "reminder_active_timers",
			Help: "Number of armed unpaid-order reminder timers",
		},
		func() float64 { return float64(manager.ActiveTimers()) },
	))

	// Initialize handlers with Wire DI
	productHandler, err := product.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize product handler")
	}

	orderHandler, err := order.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize order handler")
	}
	orderHandler.WithCache(readCache).WithPublisher(publisher).WithFeed(hub)

	logger.Logger.Info().Msg("Handlers initialized")

	// Start HTTP server
	go startHTTPServer(productHandler, orderHandler, sqlDB, cfg.App.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// warmUpReminders replays persisted orders into the reminder manager so
// unpaid orders survive process restarts
func warmUpReminders(repo orderdomain.OrderRepository, manager *reminder.Manager) {
	ownerIDs, err := repo.OwnerIDs()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list owners for reminder warm-up")
		return
	}

	armed := 0
	for _, ownerID := range ownerIDs {
		orders, err := repo.FindAll(ownerID)
		if err != nil {
			logger.Logger.Error().Err(err).Uint("owner_id", ownerID).Msg("Failed to load orders for reminder warm-up")
			continue
		}
		manager.Apply(ownerID, orders)
		armed += len(orders)
	}

	logger.Logger.Info().
		Int("owners", len(ownerIDs)).
		Int("orders_seen", armed).
		Int("timers_armed", manager.ActiveTimers()).
		Msg("Reminder warm-up complete")
}

func startHTTPServer(productHandler *producthttp.ProductHandler, orderHandler *orderhttp.OrderHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register routes
	productHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)

	// Health check endpoint
	orderHandler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}
