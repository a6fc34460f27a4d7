package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check name reported alongside the "" entry.
const ServiceName = "checkout.v1.CheckoutService"

type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewServer builds the gRPC server carrying the standard health service and
// reflection. Both entries start NOT_SERVING until WatchStorage reports.
func NewServer(log *zap.Logger) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(loggingUnaryInterceptor(log)),
	)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthSrv.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	grpc_health_v1.RegisterHealthServer(srv, healthSrv)

	// Reflection for local debugging
	reflection.Register(srv)

	return srv, healthSrv
}

// WatchStorage pings the database every interval and mirrors the result
// into the health server until ctx is done.
func WatchStorage(ctx context.Context, db Pinger, healthSrv *health.Server, interval time.Duration, log *zap.Logger) {
	last := grpc_health_v1.HealthCheckResponse_UNKNOWN
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		st := grpc_health_v1.HealthCheckResponse_SERVING
		if err := db.PingContext(pctx); err != nil {
			st = grpc_health_v1.HealthCheckResponse_NOT_SERVING
			if last != st {
				log.Warn("База данных недоступна", zap.Error(err))
			}
		}
		if st != last {
			healthSrv.SetServingStatus("", st)
			healthSrv.SetServingStatus(ServiceName, st)
			last = st
		}
	}

	check()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			healthSrv.Shutdown()
			return
		case <-t.C:
			check()
		}
	}
}

func loggingUnaryInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			log.Warn("gRPC вызов завершился ошибкой", zap.String("method", info.FullMethod), zap.Duration("took", time.Since(start)), zap.Error(err))
		} else {
			log.Debug("gRPC вызов", zap.String("method", info.FullMethod), zap.Duration("took", time.Since(start)))
		}
		return resp, err
	}
}
