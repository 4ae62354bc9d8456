package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork - хранилище недоступно, ответило 5xx или 429.
	ErrNetwork = errors.New("network failure")
	// ErrRejected - хранилище ответило неуспешным статусом.
	ErrRejected = errors.New("rejected by remote store")
	// ErrMalformed - хранилище ответило 2xx, но тело не тот JSON
	// (например, HTML-страница входа после истечения сессии).
	ErrMalformed = errors.New("malformed response from remote store")
	// ErrNotLinked - аккаунт не привязан к ресторану.
	ErrNotLinked = errors.New("user is not linked to any restaurant")
	// ErrInvalidInput - отклонено локально, до запроса в сеть.
	ErrInvalidInput = errors.New("invalid input")
)

// RejectedError - неуспешный ответ с причиной от хранилища.
type RejectedError struct {
	Status int
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: status %d", ErrRejected, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrRejected, e.Status, e.Reason)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// IsRemote сообщает, что ошибка пришла от удаленного хранилища: сеть,
// отказ или неразборчивый ответ. Фоновые задачи такие ошибки не пробрасывают.
func IsRemote(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrRejected) || errors.Is(err, ErrMalformed)
}

func Reason(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason
	}
	return ""
}

func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrNotLinked):
		return "not_linked"

	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"

	case errors.Is(err, ErrRejected):
		return "rejected"

	case errors.Is(err, ErrMalformed):
		return "malformed"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"

	case errors.Is(err, ErrNetwork):
		return "network"

	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	var rejected *RejectedError

	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrNotLinked):
		return http.StatusNotFound

	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest

	case errors.As(err, &rejected):
		if rejected.Status >= 400 && rejected.Status < 500 {
			return rejected.Status
		}
		return http.StatusBadGateway

	case errors.Is(err, ErrRejected):
		return http.StatusConflict

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	case errors.Is(err, ErrNetwork), errors.Is(err, ErrMalformed):
		return http.StatusBadGateway

	case errors.Is(err, context.Canceled):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
