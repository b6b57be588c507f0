package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the server's environment configuration.
type Config struct {
	HTTPAddr     string
	DatabaseURL  string   // postgres stores when set, in-memory otherwise
	KafkaBrokers []string // kafka publisher when set, no-op otherwise
}

// Load reads configuration from the environment, after loading .env if one
// is present.
func Load(logger *zap.Logger) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	logger.Info("configuration loaded",
		zap.String("http_addr", cfg.HTTPAddr),
		zap.Bool("postgres", cfg.DatabaseURL != ""),
		zap.Int("kafka_brokers", len(cfg.KafkaBrokers)))
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
