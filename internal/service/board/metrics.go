package board

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BoardRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_refresh_total",
			Help: "Total number of order refreshes by outcome",
		},
		[]string{"outcome"},
	)

	BoardRefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "board_refresh_duration_seconds",
			Help:    "Duration of order snapshot fetches",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	BoardCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_commands_total",
			Help: "Total number of order commands by outcome",
		},
		[]string{"command", "outcome"},
	)

	BoardTransitionViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_transition_violations_total",
			Help: "Commands sent for an order whose local state does not allow them",
		},
		[]string{"command", "state"},
	)

	BoardCards = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "board_cards",
			Help: "Number of cards currently rendered per bucket",
		},
		[]string{"bucket"},
	)

	BoardHiddenCards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "board_hidden_cards",
			Help: "Awaiting pickup cards hidden because their delivery window passed",
		},
	)
)
