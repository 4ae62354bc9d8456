package testorder

import (
	"fmt"

	"orderboard/internal/entities"
)

func validateLines(lines []entities.ProductLine) error {
	if len(lines) == 0 {
		return ErrNoProducts
	}
	for i, line := range lines {
		if line.ProductID <= 0 {
			return fmt.Errorf("line %d: %w", i, ErrInvalidProductID)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("line %d: %w", i, ErrInvalidQuantity)
		}
		if line.UnitPrice != nil && line.UnitPrice.IsNegative() {
			return fmt.Errorf("line %d: %w", i, ErrInvalidUnitPrice)
		}
	}
	return nil
}
