//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=test_order_post_test
package test_order_post

import (
	"context"

	"orderboard/internal/entities"
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
	Create(ctx context.Context, lines []entities.ProductLine) (*entities.CreatedOrder, error)
}
