package feed

import (
	"errors"
	"fmt"

	"orderboard/internal/pkg/apperr"
)

var (
	ErrInvalidNotificationID = fmt.Errorf("%w: invalid notification id", apperr.ErrInvalidInput)
	ErrClosed                = errors.New("feed is closed")
)
