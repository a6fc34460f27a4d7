package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout-service/config"
	"checkout-service/internal/cache"
	"checkout-service/internal/platform/database"
	"checkout-service/internal/platform/logger"
	"checkout-service/internal/platform/observability"
	"checkout-service/internal/producer"
	"checkout-service/internal/repository"
	"checkout-service/internal/service"
	gtransport "checkout-service/internal/transport/grpc"
	"checkout-service/internal/transport/rest"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := config.IsDevEnv(os.Getenv("ENV"))
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracingSDK(ctx, cfg.OtelEndpoint)
	if err != nil {
		log.Warn("Трассировка не настроена", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("Ошибка остановки трассировки", zap.Error(err))
		}
	}()

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	// Kafka опциональна: без брокеров события не публикуются
	var events service.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		p := producer.NewOrderProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrders)
		defer p.Close()
		events = p
		log.Info("Публикация событий включена", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.TopicOrders))
	}

	var limiter rest.RateLimiter
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Warn("Redis недоступен, лимит запросов отключён", zap.Error(err))
		} else {
			defer rdb.Close()
			limiter = cache.NewRateLimiter(rdb, cfg.RateLimitPerMinute)
		}
	}

	router := rest.Router(rest.Services{
		Orders:  service.NewOrderService(repos, repos, events, log),
		Catalog: service.NewCatalogService(repos, repos, log),
		Users:   service.NewUserService(repos, repos, log),
	}, limiter, log)

	httpSrv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcSrv, healthSrv := gtransport.NewServer(log)
	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatal("failed to listen", zap.String("addr", cfg.GRPCPort), zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Не удалось получить sql.DB", zap.Error(err))
	}
	go gtransport.WatchStorage(ctx, sqlDB, healthSrv, 5*time.Second, log)

	go func() {
		log.Info("Starting gRPC health server", zap.String("addr", cfg.GRPCPort))
		if err := grpcSrv.Serve(lis); err != nil {
			log.Fatal("gRPC server failed", zap.Error(err))
		}
	}()

	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Port))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down checkout service...")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	grpcSrv.GracefulStop()
	log.Info("Checkout service stopped gracefully")
}
