package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"checkout-service/internal/models"
	"checkout-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	SKU           string
	Name          string
	Description   string
	PriceCents    int64
	StockQuantity int32
}

type ProductFilter struct {
	Query   string
	InStock bool
	Limit   int
	Offset  int
}

type CatalogService interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, priceCents int64) (*models.Product, error)
	AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	repo *repository.Repository
	tx   TxRunner
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, tx TxRunner, log *zap.Logger) CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &catalogService{repo: repo, tx: tx, log: log}
}

func (s *catalogService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidProductName
	}
	if in.PriceCents < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPrice, in.PriceCents)
	}
	if in.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStock, in.StockQuantity)
	}

	p := &models.Product{
		Name:          name,
		Description:   in.Description,
		PriceCents:    in.PriceCents,
		StockQuantity: in.StockQuantity,
	}
	if sku := strings.TrimSpace(in.SKU); sku != "" {
		existing, err := s.repo.Products.GetBySKU(ctx, sku)
		if err != nil {
			return nil, storageErr(err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: %s", ErrSKUAlreadyExists, sku)
		}
		p.SKU = &sku
	}

	if err := s.repo.Products.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrSKUAlreadyExists, in.SKU)
		}
		s.log.Error("Не удалось создать товар", zap.Error(err))
		return nil, storageErr(err)
	}

	s.log.Info("Товар создан", zap.String("product_id", p.ID.String()))
	return p, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	f.Limit, f.Offset = pageBounds(f.Limit, f.Offset)
	list, total, err := s.repo.Products.List(ctx, repository.ProductListFilter{
		Query:   f.Query,
		InStock: f.InStock,
		Limit:   f.Limit,
		Offset:  f.Offset,
	})
	if err != nil {
		return nil, 0, storageErr(err)
	}
	return list, total, nil
}

// UpdatePrice changes the catalog price only; item snapshots keep theirs.
func (s *catalogService) UpdatePrice(ctx context.Context, id uuid.UUID, priceCents int64) (*models.Product, error) {
	if priceCents < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPrice, priceCents)
	}
	ok, err := s.repo.Products.UpdatePrice(ctx, id, priceCents)
	if err != nil {
		return nil, storageErr(err)
	}
	if !ok {
		return nil, ErrProductNotFound
	}
	s.log.Info("Цена товара изменена", zap.String("product_id", id.String()), zap.Int64("price_cents", priceCents))
	return s.GetProduct(ctx, id)
}

func (s *catalogService) AdjustStock(ctx context.Context, id uuid.UUID, delta int32) (*models.Product, error) {
	var updated *models.Product
	err := s.tx.WithTx(ctx, func(tx *repository.Repository) error {
		p, err := tx.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}
		ok, err := tx.Products.AdjustStock(ctx, id, delta)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: product %s delta %d", ErrInsufficientStock, id, delta)
		}
		updated, err = tx.Products.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, storageErr(err)
	}
	s.log.Info("Остаток товара изменён", zap.String("product_id", id.String()), zap.Int32("delta", delta))
	return updated, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithTx(ctx, func(tx *repository.Repository) error {
		p, err := tx.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}
		referenced, err := tx.Products.IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return fmt.Errorf("%w: %s", ErrProductReferenced, id)
		}
		_, err = tx.Products.Delete(ctx, id)
		return err
	})
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %s", ErrProductReferenced, id)
	}
	if err != nil {
		return storageErr(err)
	}
	s.log.Info("Товар удалён", zap.String("product_id", id.String()))
	return nil
}
