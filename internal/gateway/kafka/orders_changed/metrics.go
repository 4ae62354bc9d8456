package orders_changed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var KafkaOrdersChangedSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_orders_changed_sent_total",
		Help: "Local bus events forwarded to the orders.changed topic",
	},
	[]string{"topic", "outcome"},
)
