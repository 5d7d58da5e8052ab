package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name        string `envconfig:"OTEL_SERVICE_NAME" default:"shop-tracker"`
		Environment string `envconfig:"ENVIRONMENT" default:"development"`
		LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
		Port        string `envconfig:"HTTP_PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     string `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:"postgres"`
		Name     string `envconfig:"DB_NAME" default:"shoptracker"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Redis struct {
		Addr string `envconfig:"REDIS_ADDR" default:""`
	}

	Kafka struct {
		Brokers string `envconfig:"KAFKA_BROKERS" default:""`
		GroupID string `envconfig:"KAFKA_GROUP_ID" default:"shop-tracker-notifier"`
	}

	JWT struct {
		Secret string `envconfig:"JWT_SECRET" default:""`
	}
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// KafkaBrokers returns the configured broker list, empty when Kafka is disabled
func (c *Config) KafkaBrokers() []string {
	if c.Kafka.Brokers == "" {
		return nil
	}
	brokers := strings.Split(c.Kafka.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}

// Load reads configuration from the environment, honoring a local .env file
func Load() (*Config, error) {
	// Missing .env is fine, env vars take over
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
