package rest

import (
	"net/http"
	"strconv"

	"checkout-service/internal/dto"
	"checkout-service/internal/models"
	"checkout-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	svc service.OrderService
	log *zap.Logger
}

func NewOrderHandler(svc service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

// PlaceOrder godoc
// @Summary Оформление заказа
// @Description Атомарно списывает остатки, фиксирует цены и создаёт заказ
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.PlaceOrderRequest true "Состав заказа"
// @Success 201 {object} dto.PlaceOrderResponse
// @Failure 400 {object} dto.BaseError "Неверные данные"
// @Failure 404 {object} dto.BaseError "Товар не найден"
// @Failure 409 {object} dto.BaseError "Недостаточно товара"
// @Failure 422 {object} dto.BaseError "Пользователь неактивен или не найден"
// @Failure 429 {object} dto.BaseError "Превышен лимит запросов"
// @Failure 503 {object} dto.BaseError "Хранилище недоступно"
// @Router /api/v1/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		badRequest(c, h.log, "invalid user_id", err)
		return
	}
	in := service.PlaceOrderInput{
		UserID:          userID,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Lines:           make([]service.OrderLine, 0, len(req.Lines)),
	}
	for _, l := range req.Lines {
		pid, err := uuid.Parse(l.ProductID)
		if err != nil {
			badRequest(c, h.log, "invalid product_id", err)
			return
		}
		in.Lines = append(in.Lines, service.OrderLine{ProductID: pid, Quantity: l.Quantity})
	}

	res, err := h.svc.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PlaceOrderResponse{
		OrderID:          res.OrderID.String(),
		Status:           string(res.Status),
		TotalAmountCents: res.TotalAmountCents,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	ord, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(ord))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	var f service.ListFilter
	if s := c.Query("user_id"); s != "" {
		uid, err := uuid.Parse(s)
		if err != nil {
			badRequest(c, h.log, "invalid user_id", err)
			return
		}
		f.UserID = &uid
	}
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		f.Status = &st
	}
	limit, offset, ok := parsePage(c, h.log)
	if !ok {
		return
	}
	f.Limit, f.Offset = limit, offset

	list, total, err := h.svc.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	resp := dto.ListOrdersResponse{Orders: make([]dto.OrderResponse, 0, len(list)), Total: total}
	for i := range list {
		resp.Orders = append(resp.Orders, toOrderResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, h.log)
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "invalid request body", err)
		return
	}
	ord, err := h.svc.AdvanceStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(ord))
}

func parseID(c *gin.Context, log *zap.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, log, "invalid id", err)
		return uuid.Nil, false
	}
	return id, true
}

// parsePage reads limit and offset query params. Missing values become zero
// and the service applies its defaults.
func parsePage(c *gin.Context, log *zap.Logger) (limit, offset int, ok bool) {
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &limit}, {"offset", &offset}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			badRequest(c, log, "invalid "+p.name, err)
			return 0, 0, false
		}
		*p.dst = v
	}
	return limit, offset, true
}
