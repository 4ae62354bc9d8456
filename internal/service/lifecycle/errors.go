package lifecycle

import (
	"errors"
	"fmt"

	"orderboard/internal/pkg/apperr"
)

var (
	ErrInvalidMinutes = fmt.Errorf("%w: minutes must be a non-negative integer", apperr.ErrInvalidInput)
	ErrInvalidOrderID = fmt.Errorf("%w: invalid order id", apperr.ErrInvalidInput)
	ErrUnknownCommand = fmt.Errorf("%w: unknown command", apperr.ErrInvalidInput)

	ErrIllegalTransition = errors.New("illegal transition")
)
