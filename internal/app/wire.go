//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"orderboard/internal/pkg/config"
	"orderboard/pkg/eventbus"
	"orderboard/pkg/logger"
)

// InitializeApplication собирает доску, ленту уведомлений и фоновые задачи.
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideSource,
		provideClock,
		provideBus,
		provideCalculator,
		provideHTTPClient,
		provideOrderStoreGateway,

		provideBoard,
		provideFeed,
		provideTestOrders,

		provideOrdersRefreshTask,
		provideNotificationsPollTask,
		provideCountdownTickTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}

// InitializeKafkaBridge подключает шину экземпляра к Kafka (KAFKA_ENABLED).
func InitializeKafkaBridge(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
	bus *eventbus.Bus,
	source Source,
) (*KafkaBridge, error) {
	wire.Build(
		provideKafkaHandler,
		provideKafkaConsumer,
		provideKafkaProducer,
		provideKafkaForwarder,

		wire.Struct(new(KafkaBridge), "*"),
	)
	return nil, nil
}
