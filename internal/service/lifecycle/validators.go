package lifecycle

import (
	"fmt"
	"math"

	"orderboard/internal/entities"
)

func requiresMinutes(kind entities.CommandKind) bool {
	return kind == entities.CommandAccept || kind == entities.CommandDelay
}

// Validate отклоняет команду, которую нельзя отправлять в сеть.
func Validate(cmd entities.Command) error {
	if _, err := TransitionOf(cmd.Kind); err != nil {
		return err
	}
	if cmd.OrderID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOrderID, cmd.OrderID)
	}
	if requiresMinutes(cmd.Kind) && (cmd.Minutes == nil || *cmd.Minutes < 0) {
		return ErrInvalidMinutes
	}
	return nil
}

// ParseMinutes превращает число из JSON в минуты. Отсутствующие, NaN,
// бесконечные, отрицательные и дробные значения отклоняются.
func ParseMinutes(raw *float64) (*int, error) {
	if raw == nil {
		return nil, ErrInvalidMinutes
	}
	v := *raw
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidMinutes, v)
	}
	minutes := int(v)
	return &minutes, nil
}
