package rest

import (
	"time"

	"checkout-service/internal/dto"
	"checkout-service/internal/models"
)

func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func toOrderResponse(o *models.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:                   it.ID.String(),
			ProductID:            it.ProductID.String(),
			Quantity:             it.Quantity,
			PriceAtPurchaseCents: it.PriceAtPurchaseCents,
			LineTotalCents:       it.LineTotalCents(),
		})
	}
	return dto.OrderResponse{
		ID:               o.ID.String(),
		UserID:           o.UserID.String(),
		Status:           string(o.Status),
		TotalAmountCents: o.TotalAmountCents,
		ShippingAddress:  o.ShippingAddress,
		BillingAddress:   o.BillingAddress,
		Items:            items,
		CreatedAt:        formatTime(o.CreatedAt),
		UpdatedAt:        formatTime(o.UpdatedAt),
	}
}

func toProductResponse(p *models.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID.String(),
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		PriceCents:    p.PriceCents,
		StockQuantity: p.StockQuantity,
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
}

func toProfileResponse(p *models.Profile) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProfileResponse{FirstName: p.FirstName, LastName: p.LastName, Bio: p.Bio}
	if p.BirthDate != nil {
		out.BirthDate = p.BirthDate.Format(time.DateOnly)
	}
	return out
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		Profile:   toProfileResponse(u.Profile),
		CreatedAt: formatTime(u.CreatedAt),
	}
}
