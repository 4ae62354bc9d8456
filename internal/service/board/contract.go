//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=board_test
package board

import (
	"context"
	"time"

	"orderboard/internal/entities"
	"orderboard/internal/pkg/eta"
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

type OrderGateway interface {
	FetchOrders(ctx context.Context) (*entities.Snapshot, error)
	Accept(ctx context.Context, orderID int64, projectedMinutes int) error
	Reject(ctx context.Context, orderID int64) error
	Step(ctx context.Context, orderID int64, step entities.PreparationStep, delayMinutes int) (*entities.CommandResult, error)
}

type Publisher interface {
	Publish(event eventbus.Event) int
}

type Calculator interface {
	Countdown(order entities.Order, state entities.OrderState, now time.Time) eta.Countdown
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
