package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_polls_total",
			Help: "Total number of notification polls by outcome",
		},
		[]string{"outcome"},
	)

	FeedMarksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_marks_total",
			Help: "Total number of mark-read calls by scope and outcome",
		},
		[]string{"scope", "outcome"},
	)

	FeedUnread = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_unread_notifications",
			Help: "Number of notifications not yet read",
		},
	)
)
