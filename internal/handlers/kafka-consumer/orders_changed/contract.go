//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_changed_test
package orders_changed

import (
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Publisher interface {
	Publish(event eventbus.Event) int
}
