package dto

type CreateProductRequest struct {
	SKU           string `json:"sku"`
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	PriceCents    int64  `json:"price_cents"`
	StockQuantity int32  `json:"stock_quantity"`
}

type UpdatePriceRequest struct {
	PriceCents *int64 `json:"price_cents" binding:"required"`
}

type AdjustStockRequest struct {
	Delta int32 `json:"delta" binding:"required"`
}

type ProductResponse struct {
	ID            string  `json:"id"`
	SKU           *string `json:"sku,omitempty"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	PriceCents    int64   `json:"price_cents"`
	StockQuantity int32   `json:"stock_quantity"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
}
