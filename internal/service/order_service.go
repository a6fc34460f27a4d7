package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("checkout-service/internal/service")

type orderService struct {
	repo   *repository.Repository
	tx     TxRunner
	events EventBus
	log    *zap.Logger
	now    func() time.Time
}

func NewOrderService(repo *repository.Repository, tx TxRunner, events EventBus, log *zap.Logger) OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &orderService{
		repo:   repo,
		tx:     tx,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// validateLines checks the request shape before any storage access.
func validateLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: product %s quantity %d", ErrInvalidQuantity, l.ProductID, l.Quantity)
		}
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, l := range lines {
		if _, dup := seen[l.ProductID]; dup {
			return fmt.Errorf("%w: product %s", ErrDuplicateLineItem, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}
	return nil
}

func (s *orderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*OrderResult, error) {
	ctx, span := tracer.Start(ctx, "OrderService.PlaceOrder")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", in.UserID.String()),
		attribute.Int("order.lines", len(in.Lines)),
	)

	log := s.log.With(zap.String("user_id", in.UserID.String()), zap.Int("lines", len(in.Lines)))

	if err := validateLines(in.Lines); err != nil {
		log.Warn("Заказ отклонён при валидации", zap.Error(err))
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(in.Lines))
	for _, l := range in.Lines {
		ids = append(ids, l.ProductID)
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *repository.Repository) error {
		user, err := tx.Users.LockByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		if user == nil || !user.IsActive {
			return fmt.Errorf("%w: %s", ErrUserInactiveOrNotFound, in.UserID)
		}

		products, err := tx.Products.LockByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]models.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		for _, l := range in.Lines {
			if _, ok := byID[l.ProductID]; !ok {
				return fmt.Errorf("%w: %s", ErrProductNotFound, l.ProductID)
			}
		}
		for _, l := range in.Lines {
			if p := byID[l.ProductID]; p.StockQuantity < l.Quantity {
				return fmt.Errorf("%w: product %s requested %d available %d",
					ErrInsufficientStock, l.ProductID, l.Quantity, p.StockQuantity)
			}
		}

		var total int64
		for _, l := range in.Lines {
			line, ok := lineTotalCents(byID[l.ProductID].PriceCents, l.Quantity)
			if !ok || total > math.MaxInt64-line {
				return fmt.Errorf("%w: product %s quantity %d", ErrTotalOverflow, l.ProductID, l.Quantity)
			}
			total += line
		}

		items := make([]models.OrderItem, 0, len(in.Lines))
		for _, l := range in.Lines {
			ok, err := tx.Products.DecrementStock(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: product %s requested %d", ErrInsufficientStock, l.ProductID, l.Quantity)
			}
			item := models.OrderItem{
				ProductID:            l.ProductID,
				Quantity:             l.Quantity,
				PriceAtPurchaseCents: byID[l.ProductID].PriceCents,
			}
			items = append(items, item)
		}

		order = &models.Order{
			UserID:           in.UserID,
			Status:           models.OrderStatusPending,
			TotalAmountCents: total,
			ShippingAddress:  in.ShippingAddress,
			BillingAddress:   in.BillingAddress,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.OrderItems.BulkCreate(ctx, items); err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if IsRejection(err) {
			log.Warn("Заказ отклонён", zap.Error(err))
			return nil, err
		}
		span.RecordError(err)
		log.Error("Не удалось оформить заказ", zap.Error(err))
		return nil, storageErr(err)
	}

	span.SetAttributes(attribute.String("order.id", order.ID.String()))
	log.Info("Заказ оформлен",
		zap.String("order_id", order.ID.String()),
		zap.Int64("total_amount_cents", order.TotalAmountCents),
	)

	s.publishPlaced(ctx, order)

	return &OrderResult{
		OrderID:          order.ID,
		Status:           order.Status,
		TotalAmountCents: order.TotalAmountCents,
		Order:            order,
	}, nil
}

// publishPlaced never fails the placement; the order is already committed.
// lineTotalCents multiplies a non-negative price by a positive quantity,
// reporting false when the product does not fit in int64.
func lineTotalCents(price int64, qty int32) (int64, bool) {
	if price > math.MaxInt64/int64(qty) {
		return 0, false
	}
	return price * int64(qty), true
}

func (s *orderService) publishPlaced(ctx context.Context, order *models.Order) {
	if s.events == nil {
		return
	}
	evItems := make([]OrderItemEvent, 0, len(order.Items))
	for _, it := range order.Items {
		evItems = append(evItems, OrderItemEvent{
			ProductID:            it.ProductID,
			Quantity:             it.Quantity,
			PriceAtPurchaseCents: it.PriceAtPurchaseCents,
		})
	}
	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	err := s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
		OrderID:          order.ID,
		UserID:           order.UserID,
		Items:            evItems,
		TotalAmountCents: order.TotalAmountCents,
		Status:           string(order.Status),
		CreatedAt:        createdAt,
	})
	if err != nil {
		s.log.Error("Не удалось опубликовать событие OrderPlaced", zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidStatus, *f.Status)
	}
	f.Limit, f.Offset = pageBounds(f.Limit, f.Offset)

	ordersPtr, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		UserID: f.UserID,
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
	if err != nil {
		return nil, 0, storageErr(err)
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

func (s *orderService) AdvanceStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, next)
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *repository.Repository) error {
		ord, err := tx.Orders.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if ord == nil {
			return ErrOrderNotFound
		}
		if !ord.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, ord.Status, next)
		}
		ok, err := tx.Orders.UpdateStatus(ctx, id, ord.Status, next)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, ord.Status, next)
		}
		updated, err = tx.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		if !IsRejection(err) {
			s.log.Error("Не удалось сменить статус заказа", zap.String("order_id", id.String()), zap.Error(err))
		}
		return nil, storageErr(err)
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}

	s.log.Info("Статус заказа изменён", zap.String("order_id", id.String()), zap.String("status", string(next)))
	return updated, nil
}
