package service

import (
	"context"

	"checkout-service/internal/models"

	"github.com/google/uuid"
)

type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int32
}

type PlaceOrderInput struct {
	UserID          uuid.UUID
	ShippingAddress string
	BillingAddress  string
	Lines           []OrderLine
}

type OrderResult struct {
	OrderID          uuid.UUID
	Status           models.OrderStatus
	TotalAmountCents int64
	Order            *models.Order
}

type ListFilter struct {
	UserID *uuid.UUID
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type OrderService interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*OrderResult, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) (*models.Order, error)
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// pageBounds applies the default page size and caps it at maxListLimit.
func pageBounds(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
