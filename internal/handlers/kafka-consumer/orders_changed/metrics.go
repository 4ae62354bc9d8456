package orders_changed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var KafkaOrdersChangedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_orders_changed_messages_total",
		Help: "Messages read from the orders.changed topic by outcome",
	},
	[]string{"outcome"}, // published, own, unknown_topic, bad_message, dropped
)
