package grpc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type flakyDB struct{ down atomic.Bool }

func (f *flakyDB) PingContext(ctx context.Context) error {
	if f.down.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func TestHealth_FollowsStorage(t *testing.T) {
	srv, healthSrv := NewServer(zap.NewNop())
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := grpc_health_v1.NewHealthClient(conn)

	status := func() grpc_health_v1.HealthCheckResponse_ServingStatus {
		resp, err := client.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
		if err != nil {
			return grpc_health_v1.HealthCheckResponse_UNKNOWN
		}
		return resp.GetStatus()
	}
	require.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, status())

	db := &flakyDB{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go WatchStorage(ctx, db, healthSrv, 10*time.Millisecond, zap.NewNop())

	require.Eventually(t, func() bool { return status() == grpc_health_v1.HealthCheckResponse_SERVING },
		2*time.Second, 10*time.Millisecond)

	db.down.Store(true)
	require.Eventually(t, func() bool { return status() == grpc_health_v1.HealthCheckResponse_NOT_SERVING },
		2*time.Second, 10*time.Millisecond)
}
