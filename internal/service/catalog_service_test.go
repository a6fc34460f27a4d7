package service_test

import (
	"context"
	"errors"
	"testing"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"
	"checkout-service/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestCreateProduct_Validation(t *testing.T) {
	m := newMocks()
	created := 0
	m.products.CreateFunc = func(ctx context.Context, p *models.Product) error {
		created++
		p.ID = uuid.New()
		return nil
	}
	svc := service.NewCatalogService(m.repo, m.tx, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, service.CreateProductInput{Name: "  "}); !errors.Is(err, service.ErrInvalidProductName) {
		t.Fatalf("expected ErrInvalidProductName got %v", err)
	}
	if _, err := svc.CreateProduct(ctx, service.CreateProductInput{Name: "x", PriceCents: -1}); !errors.Is(err, service.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice got %v", err)
	}
	if _, err := svc.CreateProduct(ctx, service.CreateProductInput{Name: "x", StockQuantity: -1}); !errors.Is(err, service.ErrInvalidStock) {
		t.Fatalf("expected ErrInvalidStock got %v", err)
	}
	if created != 0 {
		t.Fatalf("invalid input must not be persisted")
	}

	p, err := svc.CreateProduct(ctx, service.CreateProductInput{SKU: " sku-1 ", Name: " Widget ", PriceCents: 0, StockQuantity: 0})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.Name != "Widget" || p.SKU == nil || *p.SKU != "sku-1" {
		t.Fatalf("fields not normalized: %+v", p)
	}
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	m := newMocks()
	m.products.GetBySKUFunc = func(ctx context.Context, sku string) (*models.Product, error) {
		return &models.Product{ID: uuid.New()}, nil
	}
	svc := service.NewCatalogService(m.repo, m.tx, zap.NewNop())
	if _, err := svc.CreateProduct(context.Background(), service.CreateProductInput{SKU: "A", Name: "x"}); !errors.Is(err, service.ErrSKUAlreadyExists) {
		t.Fatalf("expected ErrSKUAlreadyExists got %v", err)
	}

	// lost race against the unique index
	m = newMocks()
	m.products.CreateFunc = func(ctx context.Context, p *models.Product) error { return gorm.ErrDuplicatedKey }
	svc = service.NewCatalogService(m.repo, m.tx, zap.NewNop())
	if _, err := svc.CreateProduct(context.Background(), service.CreateProductInput{SKU: "A", Name: "x"}); !errors.Is(err, service.ErrSKUAlreadyExists) {
		t.Fatalf("expected ErrSKUAlreadyExists got %v", err)
	}
}

func TestUpdatePrice(t *testing.T) {
	m := newMocks()
	id := uuid.New()
	m.products.UpdatePriceFunc = func(ctx context.Context, pid uuid.UUID, price int64) (bool, error) {
		return pid == id, nil
	}
	m.products.GetByIDFunc = func(ctx context.Context, pid uuid.UUID) (*models.Product, error) {
		return &models.Product{ID: pid, PriceCents: 700}, nil
	}
	svc := service.NewCatalogService(m.repo, m.tx, zap.NewNop())

	if _, err := svc.UpdatePrice(context.Background(), id, -5); !errors.Is(err, service.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice got %v", err)
	}
	if _, err := svc.UpdatePrice(context.Background(), uuid.New(), 5); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound got %v", err)
	}
	p, err := svc.UpdatePrice(context.Background(), id, 700)
	if err != nil || p.PriceCents != 700 {
		t.Fatalf("UpdatePrice: %+v %v", p, err)
	}
}

func TestAdjustStock_BelowZero(t *testing.T) {
	m := newMocks()
	m.products.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return &models.Product{ID: id, StockQuantity: 2}, nil
	}
	m.products.AdjustStockFunc = func(ctx context.Context, id uuid.UUID, delta int32) (bool, error) {
		return 2+delta >= 0, nil
	}
	svc := service.NewCatalogService(m.repo, m.tx, zap.NewNop())

	if _, err := svc.AdjustStock(context.Background(), uuid.New(), -3); !errors.Is(err, service.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock got %v", err)
	}
	if _, err := svc.AdjustStock(context.Background(), uuid.New(), -2); err != nil {
		t.Fatalf("AdjustStock -2: %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	m := newMocks()
	deleted := false
	m.products.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		return &models.Product{ID: id}, nil
	}
	m.products.IsReferencedFunc = func(ctx context.Context, id uuid.UUID) (bool, error) { return true, nil }
	m.products.DeleteFunc = func(ctx context.Context, id uuid.UUID) (bool, error) {
		deleted = true
		return true, nil
	}
	svc := service.NewCatalogService(m.repo, m.tx, zap.NewNop())

	if err := svc.DeleteProduct(context.Background(), uuid.New()); !errors.Is(err, service.ErrProductReferenced) {
		t.Fatalf("expected ErrProductReferenced got %v", err)
	}
	if deleted {
		t.Fatalf("referenced product must not be deleted")
	}

	m.products.IsReferencedFunc = func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil }
	m.products.DeleteFunc = func(ctx context.Context, id uuid.UUID) (bool, error) { return false, gorm.ErrForeignKeyViolated }
	if err := svc.DeleteProduct(context.Background(), uuid.New()); !errors.Is(err, service.ErrProductReferenced) {
		t.Fatalf("FK violation must map to ErrProductReferenced, got %v", err)
	}

	m.products.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Product, error) { return nil, nil }
	if err := svc.DeleteProduct(context.Background(), uuid.New()); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound got %v", err)
	}
}

func TestListProducts_PageBounds(t *testing.T) {
	m := newMocks()
	var seen repository.ProductListFilter
	m.products.ListFunc = func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
		seen = f
		return nil, 0, nil
	}
	svc := service.NewCatalogService(m.repo, m.tx, zap.NewNop())

	if _, _, err := svc.ListProducts(context.Background(), service.ProductFilter{Limit: 5000, Offset: -1}); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if seen.Limit != 100 || seen.Offset != 0 {
		t.Fatalf("bounds not applied: %+v", seen)
	}
}
