package service

import (
	"context"

	"checkout-service/internal/repository"
)

// TxRunner opens a transaction over the full repository set.
// *repository.Repository satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *repository.Repository) error) error
}
