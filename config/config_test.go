package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setRequired(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"APP_PORT":    ":8080",
		"DB_HOST":     "localhost",
		"DB_PORT":     "5432",
		"DB_USER":     "checkout",
		"DB_PASSWORD": "secret",
		"DB_NAME":     "checkout",
		"DB_SSLMODE":  "disable",
	} {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("GRPC_PORT", "")
	t.Setenv("ENV", "")

	cfg := Load(zap.NewNop())
	require.Equal(t, ":8080", cfg.Port)
	require.Equal(t, ":9090", cfg.GRPCPort)
	require.Equal(t, 30, cfg.RateLimitPerMinute)
	require.Nil(t, cfg.Kafka.Brokers)
	require.Equal(t, "orders.placed", cfg.Kafka.TopicOrders)
	require.False(t, cfg.IsDev())
	require.Equal(t, "host=localhost port=5432 user=checkout password=secret dbname=checkout sslmode=disable", cfg.DB.DSN())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("KAFKA_BROKERS", " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("ENV", "development")

	cfg := Load(zap.NewNop())
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, 120, cfg.RateLimitPerMinute)
	require.True(t, cfg.Redis.Enabled)
	require.Equal(t, 0, cfg.Redis.DB)
	require.True(t, cfg.IsDev())
}

func TestIsDevEnv(t *testing.T) {
	require.True(t, IsDevEnv("development"))
	for _, env := range []string{"", "dev", "prod", "production", "Development"} {
		require.False(t, IsDevEnv(env), env)
	}
}

func TestLoad_PanicsOnMissingRequired(t *testing.T) {
	require.Panics(t, func() { getEnv("CHECKOUT_TEST_UNSET_KEY", zap.NewNop()) })
}
