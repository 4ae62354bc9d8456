package orders_changed

import (
	"encoding/json"
	"slices"

	"github.com/IBM/sarama"
	"orderboard/internal/entities"
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

type Handler struct {
	publisher Publisher
	log       handlerLogger
	source    string
}

// New возвращает обработчик orders.changed. Сообщения, отправленные этим же
// экземпляром (source), пропускаются: локальная шина их уже видела.
func New(log handlerLogger, publisher Publisher, source string) *Handler {
	handlerLog := log.With(
		logger.NewField("source", source),
	)

	return &Handler{
		publisher: publisher,
		log:       handlerLog,
		source:    source,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("orders.changed: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("orders.changed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если сессия уже закрыта и сообщение нужно перечитать.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	if sess.Context().Err() != nil {
		h.log.With(
			logger.NewField("offset", message.Offset),
		).Warn("orders.changed session closed, message will be reprocessed")
		return true
	}

	var event changedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("orders.changed handler received bad message")
		KafkaOrdersChangedTotal.WithLabelValues("bad_message").Inc()
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("event_source", event.Source),
		logger.NewField("topic", event.Topic),
		logger.NewField("offset", message.Offset),
	)

	switch {
	case event.Source == h.source:
		msgLog.Debug("orders.changed: own message skipped")
		KafkaOrdersChangedTotal.WithLabelValues("own").Inc()

	case !slices.Contains(entities.RefreshTopics, event.Topic):
		msgLog.Warn("orders.changed handler unknown topic")
		KafkaOrdersChangedTotal.WithLabelValues("unknown_topic").Inc()

	default:
		delivered := h.publisher.Publish(eventbus.Event{
			Topic:  event.Topic,
			Source: event.Source,
			At:     event.At,
		})
		if delivered == 0 {
			// подписчики уже держат необработанный сигнал
			KafkaOrdersChangedTotal.WithLabelValues("dropped").Inc()
		} else {
			KafkaOrdersChangedTotal.WithLabelValues("published").Inc()
		}
		msgLog.Info("orders.changed: processed",
			logger.NewField("delivered", delivered),
		)
	}

	sess.MarkMessage(message, "")
	return false
}
