package cache

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func setupRedis(t *testing.T) *RedisClient {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	addr, err := ctr.PortEndpoint(ctx, "6379/tcp", "")
	if err != nil {
		t.Fatalf("redis endpoint: %v", err)
	}

	rdb, err := NewRedisClient(addr, "", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRateLimiter_Allow(t *testing.T) {
	l := NewRateLimiter(setupRedis(t), 3)
	l.window = time.Hour // не попасть на границу окна
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "orders:1.2.3.4")
		if err != nil || !ok {
			t.Fatalf("hit %d must pass: %v %v", i+1, ok, err)
		}
	}
	ok, err := l.Allow(ctx, "orders:1.2.3.4")
	if err != nil || ok {
		t.Fatalf("4th hit must be limited: %v %v", ok, err)
	}

	// другой ключ считается отдельно
	ok, err = l.Allow(ctx, "orders:5.6.7.8")
	if err != nil || !ok {
		t.Fatalf("other key must pass: %v %v", ok, err)
	}
}
