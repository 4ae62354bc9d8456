package testorder

import (
	"fmt"

	"orderboard/internal/pkg/apperr"
)

var (
	ErrNoProducts       = fmt.Errorf("%w: at least one product is required", apperr.ErrInvalidInput)
	ErrInvalidProductID = fmt.Errorf("%w: product_id must be a positive integer", apperr.ErrInvalidInput)
	ErrInvalidQuantity  = fmt.Errorf("%w: quantity must be >= 1", apperr.ErrInvalidInput)
	ErrInvalidUnitPrice = fmt.Errorf("%w: unit price must not be negative", apperr.ErrInvalidInput)
	ErrInvalidOrderID   = fmt.Errorf("%w: invalid order id", apperr.ErrInvalidInput)
)
