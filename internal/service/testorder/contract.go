//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=testorder_test
package testorder

import (
	"context"

	"orderboard/internal/entities"
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

type OrderInjector interface {
	CreateOrder(ctx context.Context, lines []entities.ProductLine) (*entities.CreatedOrder, error)
	CancelOrder(ctx context.Context, orderID int64) error
}

type Publisher interface {
	Publish(event eventbus.Event) int
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
