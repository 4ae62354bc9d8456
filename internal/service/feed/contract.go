//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=feed_test
package feed

import (
	"context"

	"orderboard/internal/entities"
	"orderboard/pkg/logger"
)

type NotificationGateway interface {
	FetchNotifications(ctx context.Context) ([]entities.Notification, error)
	MarkRead(ctx context.Context, notificationID int64) error
	MarkAllRead(ctx context.Context) error
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
