package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PageActions counts finished page actions by outcome (success, error).
	PageActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pingo",
			Name:      "page_actions_total",
			Help:      "The total number of finished page actions",
		},
		[]string{"page", "action", "outcome"},
	)

	// PageActionsRejected counts invocations refused because the same action was still loading.
	PageActionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pingo",
			Name:      "page_actions_rejected_total",
			Help:      "The total number of page actions rejected while in flight",
		},
		[]string{"page", "action"},
	)

	PageActionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pingo",
			Name:      "page_action_duration_seconds",
			Help:      "Time spent in page actions, backend round trip included",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"page", "action"},
	)

	BookingEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pingo",
			Name:      "booking_events_published_total",
			Help:      "The total number of booking events handed to the broker",
		},
		[]string{"type", "outcome"},
	)
)
