package testorder

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"orderboard/internal/entities"
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

// Service создает тестовые заказы в хранилище, чтобы вне production доске
// было что показать.
type Service struct {
	log       handlerLogger
	injector  OrderInjector
	publisher Publisher
	clock     clockwork.Clock
	source    string
}

func New(log handlerLogger, injector OrderInjector, publisher Publisher, clock clockwork.Clock, source string) *Service {
	return &Service{
		log:       log,
		injector:  injector,
		publisher: publisher,
		clock:     clock,
		source:    source,
	}
}

func (s *Service) Create(ctx context.Context, lines []entities.ProductLine) (*entities.CreatedOrder, error) {
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	order, err := s.injector.CreateOrder(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("create test order: %w", err)
	}

	s.log.Info("test order created",
		logger.NewField("order_id", order.ID),
		logger.NewField("items", len(order.Items)),
	)
	s.publish(entities.TopicOrderCreated)
	return order, nil
}

func (s *Service) Cancel(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidOrderID, orderID)
	}

	if err := s.injector.CancelOrder(ctx, orderID); err != nil {
		return fmt.Errorf("cancel test order %d: %w", orderID, err)
	}

	s.log.Info("test order cancelled",
		logger.NewField("order_id", orderID),
	)
	s.publish(entities.TopicOrderCancelled)
	return nil
}

func (s *Service) publish(topic string) {
	s.publisher.Publish(eventbus.Event{
		Topic:  topic,
		Source: s.source,
		At:     s.clock.Now(),
	})
}
