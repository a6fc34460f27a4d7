package config

import (
	"os"
	"strconv"
	"strings"

	"checkout-service/internal/platform/database"

	"go.uber.org/zap"
)

type Config struct {
	Env      string
	Port     string
	GRPCPort string
	DB       DB
	Redis    Redis
	Kafka    Kafka

	RateLimitPerMinute int
	OtelEndpoint       string
}

type DB struct {
	database.Config
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Brokers     []string
	TopicOrders string
}

// Load reads required variables via getEnv (panics when missing) and
// optional ones with defaults.
func Load(log *zap.Logger) *Config {
	return &Config{
		Env:      getEnvDefault("ENV", "production"),
		Port:     getEnv("APP_PORT", log),
		GRPCPort: getEnvDefault("GRPC_PORT", ":9090"),
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		Redis: Redis{
			Enabled:  getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoiDefault(os.Getenv("REDIS_DB"), 0),
		},
		Kafka: Kafka{
			Brokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			TopicOrders: getEnvDefault("KAFKA_TOPIC_ORDERS", "orders.placed"),
		},
		RateLimitPerMinute: atoiDefault(os.Getenv("RATE_LIMIT_PER_MINUTE"), 30),
		OtelEndpoint:       os.Getenv("OTEL_ENDPOINT"),
	}
}

func (c *Config) IsDev() bool { return IsDevEnv(c.Env) }

// IsDevEnv reports whether env selects development mode. Anything else,
// including an unset ENV, runs with the production logger.
func IsDevEnv(env string) bool { return env == "development" }

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
