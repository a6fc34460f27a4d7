package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderItemEvent struct {
	ProductID            uuid.UUID `json:"product_id"`
	Quantity             int32     `json:"quantity"`
	PriceAtPurchaseCents int64     `json:"price_at_purchase_cents"`
}

type OrderPlacedEvent struct {
	OrderID          uuid.UUID        `json:"order_id"`
	UserID           uuid.UUID        `json:"user_id"`
	Items            []OrderItemEvent `json:"items"`
	TotalAmountCents int64            `json:"total_amount_cents"`
	Status           string           `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
}

type EventBus interface {
	PublishOrderPlaced(ctx context.Context, e OrderPlacedEvent) error
}
