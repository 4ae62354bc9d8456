//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=test_order_cancel_post_test
package test_order_cancel_post

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
	Cancel(ctx context.Context, orderID int64) error
}
