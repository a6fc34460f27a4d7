package rest

import (
	"net/http"

	"checkout-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Services struct {
	Orders  service.OrderService
	Catalog service.CatalogService
	Users   service.UserService
}

// Router builds the HTTP API. limiter may be nil, which disables rate
// limiting on order placement.
func Router(svcs Services, limiter RateLimiter, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), Tracing(), RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	orders := NewOrderHandler(svcs.Orders, log)
	products := NewProductHandler(svcs.Catalog, log)
	users := NewUserHandler(svcs.Users, log)

	v1 := r.Group("/api/v1")

	place := []gin.HandlerFunc{orders.PlaceOrder}
	if limiter != nil {
		place = append([]gin.HandlerFunc{RateLimit(limiter, "orders", log)}, place...)
	}
	v1.POST("/orders", place...)
	v1.GET("/orders", orders.ListOrders)
	v1.GET("/orders/:id", orders.GetOrder)
	v1.PATCH("/orders/:id/status", orders.UpdateStatus)

	v1.POST("/products", products.Create)
	v1.GET("/products", products.List)
	v1.GET("/products/:id", products.Get)
	v1.PATCH("/products/:id/price", products.UpdatePrice)
	v1.POST("/products/:id/stock", products.AdjustStock)
	v1.DELETE("/products/:id", products.Delete)

	v1.POST("/users", users.Register)
	v1.GET("/users/:id", users.Get)
	v1.PUT("/users/:id/profile", users.UpsertProfile)
	v1.POST("/users/:id/deactivate", users.Deactivate)
	v1.DELETE("/users/:id", users.Delete)

	return r
}
