//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=board_get_test
package board_get

import (
	"context"

	"orderboard/internal/service/board"
	"orderboard/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	View() board.View
	Refresh(ctx context.Context) error
}
