//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notifications_read_all_post_test
package notifications_read_all_post

import (
	"context"

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
	MarkAll(ctx context.Context) error
}
