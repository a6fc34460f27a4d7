package rest

import (
	"context"
	"net/http"

	"checkout-service/internal/dto"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RateLimiter is satisfied by *cache.RateLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests over the per-client budget. Limiter failures
// let the request through.
func RateLimit(l RateLimiter, scope string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		ok, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn("Ошибка проверки лимита запросов", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			log.Warn("Превышен лимит запросов", zap.String("key", key))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewRateLimitedError("too many requests"))
			return
		}
		c.Next()
	}
}

// RequestLogger пишет одну строку на запрос.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Info("HTTP запрос",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// Tracing continues the caller's trace from request headers and opens a
// server span per route.
func Tracing() gin.HandlerFunc {
	tracer := otel.Tracer("checkout-service/internal/transport/rest")
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		)
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
	}
}
