package orders_changed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

// Gateway пересылает локальные события шины в топик orders.changed,
// чтобы другие экземпляры обновили доску.
type Gateway struct {
	log      handlerLogger
	producer sarama.SyncProducer
	topic    string
	source   string
}

func New(log handlerLogger, producer sarama.SyncProducer, topic, source string) *Gateway {
	return &Gateway{
		log: log.With(
			logger.NewField("topic", topic),
			logger.NewField("source", source),
		),
		producer: producer,
		topic:    topic,
		source:   source,
	}
}

// Send отправляет событие. События из чужих источников не пересылаются,
// иначе сообщения ходили бы между экземплярами по кругу.
func (g *Gateway) Send(event eventbus.Event) (bool, error) {
	if event.Source != g.source {
		return false, nil
	}

	payload, err := json.Marshal(changedEvent{
		Source: event.Source,
		Topic:  event.Topic,
		At:     event.At,
	})
	if err != nil {
		return false, fmt.Errorf("marshal event: %w", err)
	}

	partition, offset, err := g.producer.SendMessage(&sarama.ProducerMessage{
		Topic: g.topic,
		Key:   sarama.StringEncoder(g.source),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		KafkaOrdersChangedSentTotal.WithLabelValues(event.Topic, "error").Inc()
		return false, fmt.Errorf("send %s: %w", event.Topic, err)
	}

	KafkaOrdersChangedSentTotal.WithLabelValues(event.Topic, "ok").Inc()
	g.log.Debug("orders.changed sent",
		logger.NewField("event_topic", event.Topic),
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	)
	return true, nil
}

// Run пересылает события из events до отмены ctx или закрытия канала.
func (g *Gateway) Run(ctx context.Context, events <-chan eventbus.Event) {
	g.log.Info("orders.changed forwarder starting")

	for {
		select {
		case <-ctx.Done():
			g.log.Info("orders.changed forwarder stopped (context cancelled)")
			return
		case event, ok := <-events:
			if !ok {
				g.log.Info("orders.changed forwarder stopped (events closed)")
				return
			}
			if _, err := g.Send(event); err != nil {
				g.log.Warn("orders.changed forward failed",
					logger.NewField("error", err),
				)
			}
		}
	}
}

func (g *Gateway) Close() error {
	return g.producer.Close()
}
