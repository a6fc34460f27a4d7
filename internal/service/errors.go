package service

import (
	"errors"
	"fmt"
)

// Ошибки оформления заказа. Все, кроме ErrStorageUnavailable, означают
// отказ по данным запроса и не требуют повтора.
var (
	ErrEmptyOrder             = errors.New("order has no lines")
	ErrInvalidQuantity        = errors.New("quantity must be > 0")
	ErrDuplicateLineItem      = errors.New("product appears more than once")
	ErrUserInactiveOrNotFound = errors.New("user inactive or not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrTotalOverflow          = errors.New("order total exceeds supported range")
	ErrStorageUnavailable     = errors.New("storage unavailable")
)

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

var (
	ErrInvalidProductName = errors.New("product name is required")
	ErrInvalidPrice       = errors.New("price must be >= 0")
	ErrInvalidStock       = errors.New("stock must be >= 0")
	ErrSKUAlreadyExists   = errors.New("sku already exists")
	ErrProductReferenced  = errors.New("product is referenced by orders")
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrInvalidRole   = errors.New("invalid role")
	ErrEmailExists   = errors.New("email already exists")
	ErrUserHasOrders = errors.New("user has orders")
)

var domainErrors = []error{
	ErrEmptyOrder, ErrInvalidQuantity, ErrDuplicateLineItem, ErrUserInactiveOrNotFound,
	ErrProductNotFound, ErrInsufficientStock, ErrTotalOverflow,
	ErrOrderNotFound, ErrInvalidStatus, ErrInvalidStatusTransition,
	ErrInvalidProductName, ErrInvalidPrice, ErrInvalidStock, ErrSKUAlreadyExists, ErrProductReferenced,
	ErrUserNotFound, ErrInvalidEmail, ErrInvalidRole, ErrEmailExists, ErrUserHasOrders,
}

// IsRejection reports whether err is a request-level rejection rather than
// a storage failure.
func IsRejection(err error) bool {
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return true
		}
	}
	return false
}

// storageErr passes rejections through and wraps anything else as
// ErrStorageUnavailable keeping the cause.
func storageErr(err error) error {
	if err == nil || IsRejection(err) || errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}
