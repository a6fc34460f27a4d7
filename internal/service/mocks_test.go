package service_test

import (
	"context"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"
	"checkout-service/internal/service"

	"github.com/google/uuid"
)

// Моки зависимостей сервисов

type MockUserRepo struct {
	CreateFunc     func(ctx context.Context, u *models.User) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	LockByIDFunc   func(ctx context.Context, id uuid.UUID) (*models.User, error)
	DeactivateFunc func(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) LockByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.LockByIDFunc != nil {
		return m.LockByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return false, nil
}

func (m *MockUserRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

type MockProfileRepo struct {
	UpsertFunc      func(ctx context.Context, p *models.Profile) error
	GetByUserIDFunc func(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
}

func (m *MockProfileRepo) Upsert(ctx context.Context, p *models.Profile) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, p)
	}
	return nil
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

type MockProductRepo struct {
	CreateFunc         func(ctx context.Context, p *models.Product) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySKUFunc       func(ctx context.Context, sku string) (*models.Product, error)
	ListFunc           func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	UpdatePriceFunc    func(ctx context.Context, id uuid.UUID, priceCents int64) (bool, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) (bool, error)
	IsReferencedFunc   func(ctx context.Context, id uuid.UUID) (bool, error)
	LockByIDsFunc      func(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	DecrementStockFunc func(ctx context.Context, id uuid.UUID, qty int32) (bool, error)
	AdjustStockFunc    func(ctx context.Context, id uuid.UUID, delta int32) (bool, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	if m.GetBySKUFunc != nil {
		return m.GetBySKUFunc(ctx, sku)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) UpdatePrice(ctx context.Context, id uuid.UUID, priceCents int64) (bool, error) {
	if m.UpdatePriceFunc != nil {
		return m.UpdatePriceFunc(ctx, id, priceCents)
	}
	return false, nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.IsReferencedFunc != nil {
		return m.IsReferencedFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) LockByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if m.LockByIDsFunc != nil {
		return m.LockByIDsFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, id, qty)
	}
	return true, nil
}

func (m *MockProductRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (bool, error) {
	if m.AdjustStockFunc != nil {
		return m.AdjustStockFunc(ctx, id, delta)
	}
	return true, nil
}

type MockOrderRepo struct {
	CreateFunc        func(ctx context.Context, o *models.Order) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	LockByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatusFunc  func(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error)
	ListFunc          func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	ExistsForUserFunc func(ctx context.Context, userID uuid.UUID) (bool, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) LockByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.LockByIDFunc != nil {
		return m.LockByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, from, to)
	}
	return true, nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	if m.ExistsForUserFunc != nil {
		return m.ExistsForUserFunc(ctx, userID)
	}
	return false, nil
}

type MockOrderItemRepo struct {
	BulkCreateFunc func(ctx context.Context, items []models.OrderItem) error
	SumByOrderFunc func(ctx context.Context, orderID uuid.UUID) (int64, error)
}

func (m *MockOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	return nil
}

func (m *MockOrderItemRepo) SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	if m.SumByOrderFunc != nil {
		return m.SumByOrderFunc(ctx, orderID)
	}
	return 0, nil
}

type MockEventBus struct {
	PublishOrderPlacedFunc func(ctx context.Context, e service.OrderPlacedEvent) error
}

func (m *MockEventBus) PublishOrderPlaced(ctx context.Context, e service.OrderPlacedEvent) error {
	if m.PublishOrderPlacedFunc != nil {
		return m.PublishOrderPlacedFunc(ctx, e)
	}
	return nil
}

// fakeTx runs fn directly against the mock-backed repository.
type fakeTx struct {
	repo  *repository.Repository
	err   error
	calls int
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(f.repo)
}

type mocks struct {
	users    *MockUserRepo
	profiles *MockProfileRepo
	products *MockProductRepo
	orders   *MockOrderRepo
	items    *MockOrderItemRepo
	repo     *repository.Repository
	tx       *fakeTx
}

func newMocks() *mocks {
	m := &mocks{
		users:    &MockUserRepo{},
		profiles: &MockProfileRepo{},
		products: &MockProductRepo{},
		orders:   &MockOrderRepo{},
		items:    &MockOrderItemRepo{},
	}
	m.repo = &repository.Repository{
		Users:      m.users,
		Profiles:   m.profiles,
		Products:   m.products,
		Orders:     m.orders,
		OrderItems: m.items,
	}
	m.tx = &fakeTx{repo: m.repo}
	return m
}
