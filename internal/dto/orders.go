package dto

type OrderLineRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int32  `json:"quantity"`
}

// PlaceOrderRequest: quantity and line-set rules are checked by the service
// so their error kinds stay distinct.
type PlaceOrderRequest struct {
	UserID          string             `json:"user_id" binding:"required,uuid"`
	ShippingAddress string             `json:"shipping_address"`
	BillingAddress  string             `json:"billing_address"`
	Lines           []OrderLineRequest `json:"lines" binding:"dive"`
}

type PlaceOrderResponse struct {
	OrderID          string `json:"order_id"`
	Status           string `json:"status"`
	TotalAmountCents int64  `json:"total_amount_cents"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderItemResponse struct {
	ID                   string `json:"id"`
	ProductID            string `json:"product_id"`
	Quantity             int32  `json:"quantity"`
	PriceAtPurchaseCents int64  `json:"price_at_purchase_cents"`
	LineTotalCents       int64  `json:"line_total_cents"`
}

type OrderResponse struct {
	ID               string              `json:"id"`
	UserID           string              `json:"user_id"`
	Status           string              `json:"status"`
	TotalAmountCents int64               `json:"total_amount_cents"`
	ShippingAddress  string              `json:"shipping_address"`
	BillingAddress   string              `json:"billing_address"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}
