package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	kafkaGateway "orderboard/internal/gateway/kafka/orders_changed"
	"orderboard/internal/gateway/rest/orderstore"
	kafkaHandler "orderboard/internal/handlers/kafka-consumer/orders_changed"
	"orderboard/internal/handlers/tasks/countdown_tick"
	"orderboard/internal/handlers/tasks/notifications_poll"
	"orderboard/internal/handlers/tasks/orders_refresh"
	"orderboard/internal/pkg/config"
	"orderboard/internal/pkg/eta"
	"orderboard/internal/pkg/kafka"
	"orderboard/internal/service/board"
	"orderboard/internal/service/feed"
	"orderboard/internal/service/testorder"
	"orderboard/pkg/background"
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

// Source идентифицирует экземпляр сервиса в событиях шины и Kafka.
type Source string

type Application struct {
	Source            Source
	Bus               *eventbus.Bus
	Board             *board.Board
	Feed              *feed.Feed
	TestOrders        *testorder.Service
	OrdersRefresh     *orders_refresh.OrdersRefresh
	BackgroundWorkers *background.Worker
}

// Close останавливает фоновые задачи и сервисы в порядке, обратном запуску.
func (a *Application) Close() {
	a.BackgroundWorkers.Stop()
	a.OrdersRefresh.Close()
	a.Board.Close()
	a.Feed.Shutdown()
	a.Bus.Close()
}

// KafkaBridge связывает локальную шину с топиком orders.changed.
type KafkaBridge struct {
	Consumer  *kafka.Consumer
	Forwarder *kafkaGateway.Gateway
}

func (k *KafkaBridge) Close() error {
	consumerErr := k.Consumer.Close()
	forwarderErr := k.Forwarder.Close()
	if consumerErr != nil {
		return fmt.Errorf("close consumer: %w", consumerErr)
	}
	if forwarderErr != nil {
		return fmt.Errorf("close producer: %w", forwarderErr)
	}
	return nil
}

func provideSource(cfg *config.Config) Source {
	if cfg.InstanceID != "" {
		return Source(cfg.InstanceID)
	}
	return Source(uuid.NewString())
}

func provideClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func provideBus() *eventbus.Bus {
	return eventbus.New()
}

func provideCalculator() *eta.Calculator {
	return eta.New()
}

func provideHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.RemoteStore.RequestTimeout}
}

func provideOrderStoreGateway(cfg *config.Config, client *http.Client, clock clockwork.Clock) (*orderstore.Gateway, error) {
	return orderstore.New(orderstore.Config{
		BaseURL:   cfg.RemoteStore.BaseURL,
		SessionID: cfg.RemoteStore.SessionID,
		CSRFToken: cfg.RemoteStore.CSRFToken,
	}, client, clock)
}

func provideBoard(
	log logger.Logger,
	gateway *orderstore.Gateway,
	bus *eventbus.Bus,
	clock clockwork.Clock,
	calc *eta.Calculator,
	source Source,
	cfg *config.Config,
) *board.Board {
	return board.New(
		log.With(logger.NewField("component", "board")),
		gateway,
		bus,
		clock,
		calc,
		board.Config{
			Source:        string(source),
			HealTimeout:   cfg.Board.HealTimeout,
			CommitHorizon: cfg.Board.CommitHorizon,
		},
	)
}

func provideFeed(log logger.Logger, gateway *orderstore.Gateway, clock clockwork.Clock, cfg *config.Config) *feed.Feed {
	return feed.New(
		log.With(logger.NewField("component", "feed")),
		gateway,
		clock,
		feed.Config{
			AlwaysOn: cfg.Feed.AlwaysOn,
			Lease:    cfg.Feed.Lease,
		},
	)
}

func provideTestOrders(
	log logger.Logger,
	gateway *orderstore.Gateway,
	bus *eventbus.Bus,
	clock clockwork.Clock,
	source Source,
) *testorder.Service {
	return testorder.New(
		log.With(logger.NewField("component", "testorder")),
		gateway,
		bus,
		clock,
		string(source),
	)
}

func provideOrdersRefreshTask(log logger.Logger, b *board.Board, bus *eventbus.Bus, cfg *config.Config) *orders_refresh.OrdersRefresh {
	return orders_refresh.NewOrdersRefresh(log, b, bus, cfg.Tasks.OrdersPollInterval)
}

func provideNotificationsPollTask(log logger.Logger, f *feed.Feed, cfg *config.Config) *notifications_poll.NotificationsPoll {
	return notifications_poll.NewNotificationsPoll(log, f, cfg.Tasks.NotificationsPollInterval)
}

func provideCountdownTickTask(log logger.Logger, b *board.Board, cfg *config.Config) *countdown_tick.CountdownTick {
	return countdown_tick.NewCountdownTick(log, b, cfg.Tasks.CountdownTickInterval)
}

func provideTaskList(
	ordersRefreshTask *orders_refresh.OrdersRefresh,
	notificationsPollTask *notifications_poll.NotificationsPoll,
	countdownTickTask *countdown_tick.CountdownTick,
) []background.Task {
	return []background.Task{
		ordersRefreshTask,
		notificationsPollTask,
		countdownTickTask,
	}
}

func provideBackgroundWorkers(
	ctx context.Context,
	log logger.Logger,
	clock clockwork.Clock,
	tasks []background.Task,
) (*background.Worker, error) {
	return background.New(ctx, log, clock, tasks)
}

func provideKafkaHandler(log logger.Logger, bus *eventbus.Bus, source Source) *kafkaHandler.Handler {
	return kafkaHandler.New(log, bus, string(source))
}

func provideKafkaConsumer(ctx context.Context, log logger.Logger, cfg *config.Config, handler *kafkaHandler.Handler) (*kafka.Consumer, error) {
	return kafka.NewConsumer(ctx, log, &cfg.Kafka, handler)
}

func provideKafkaProducer(ctx context.Context, log logger.Logger, cfg *config.Config) (sarama.SyncProducer, error) {
	return kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
}

func provideKafkaForwarder(log logger.Logger, producer sarama.SyncProducer, cfg *config.Config, source Source) *kafkaGateway.Gateway {
	return kafkaGateway.New(log, producer, cfg.Kafka.Topic, string(source))
}
