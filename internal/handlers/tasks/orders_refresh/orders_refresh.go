package orders_refresh

import (
	"context"
	"time"

	"orderboard/internal/entities"
	"orderboard/internal/pkg/apperr"
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

type Service interface {
	Refresh(ctx context.Context) error
}

type Subscriber interface {
	Subscribe(buffer int, topics ...string) (<-chan eventbus.Event, func())
}

// OrdersRefresh перечитывает заказы по таймеру и по каждому сигналу шины
// (создание, отмена, успешная команда).
type OrdersRefresh struct {
	log         logger.Logger
	service     Service
	interval    time.Duration
	triggers    <-chan eventbus.Event
	unsubscribe func()
}

func NewOrdersRefresh(log logger.Logger, service Service, bus Subscriber, interval time.Duration) *OrdersRefresh {
	triggers, unsubscribe := bus.Subscribe(1, entities.RefreshTopics...)

	return &OrdersRefresh{
		log:         log,
		service:     service,
		interval:    interval,
		triggers:    triggers,
		unsubscribe: unsubscribe,
	}
}

func (o *OrdersRefresh) TTL() time.Duration {
	return o.interval
}

// Do не возвращает ошибки удаленного хранилища: доска уже сохранила их
// в представлении, следующий тик повторит запрос.
func (o *OrdersRefresh) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	err := o.service.Refresh(ctxWithTimeout)
	switch {
	case err == nil:
		return nil
	case apperr.IsRemote(err):
		o.log.With(
			logger.NewField("error", err),
		).Warn("orders refresh failed, keeping last snapshot")
		return nil
	default:
		return err
	}
}

func (o *OrdersRefresh) Info() string {
	return "orders refresh"
}

func (o *OrdersRefresh) Triggers() <-chan eventbus.Event {
	return o.triggers
}

// Close отписывается от шины, канал Triggers закрывается.
func (o *OrdersRefresh) Close() {
	o.unsubscribe()
}
