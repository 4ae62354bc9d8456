package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RateLimitExceededTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "orderboard",
		Subsystem: "http",
		Name:      "throttled_requests_total",
		Help:      "Requests answered with 429 by the token bucket limiter",
	},
	[]string{"method", "route"},
)
