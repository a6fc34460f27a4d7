package rest

import (
	"net/http"

	"checkout-service/internal/dto"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	svc service.CatalogService
	log *zap.Logger
}

func NewProductHandler(svc service.CatalogService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	p, err := h.svc.CreateProduct(c.Request.Context(), service.CreateProductInput{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(p))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	p, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

// UpdatePrice changes the catalog price; placed orders keep their snapshot.
func (h *ProductHandler) UpdatePrice(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	var req dto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	p, err := h.svc.UpdatePrice(c.Request.Context(), id, *req.PriceCents)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	p, err := h.svc.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) List(c *gin.Context) {
	limit, offset, ok := parsePage(c, h.log)
	if !ok {
		return
	}
	list, total, err := h.svc.ListProducts(c.Request.Context(), service.ProductFilter{
		Query:   c.Query("q"),
		InStock: c.Query("in_stock") == "true",
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	resp := dto.ListProductsResponse{Products: make([]dto.ProductResponse, 0, len(list)), Total: total}
	for i := range list {
		resp.Products = append(resp.Products, toProductResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}
