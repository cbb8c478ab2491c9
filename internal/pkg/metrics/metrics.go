package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Outcome of every candidate notification handed to the dispatcher.
	NotificationDispatch = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_dispatch_total",
			Help: "Candidate notifications by type and dispatch outcome",
		},
		[]string{"type", "outcome"},
	)

	// Push/email side effects. result: success, failed, skipped
	ChannelDelivery = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_channel_delivery_total",
			Help: "Push and email deliveries by channel and result",
		},
		[]string{"channel", "result"},
	)

	ClaimTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claim_transitions_total",
			Help: "Accepted claim status transitions by resulting status",
		},
		[]string{"status"},
	)

	ClaimTransitionRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "claim_transition_rejected_total",
			Help: "Rejected claim status transitions by reason",
		},
		[]string{"reason"},
	)

	RealtimePublish = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_realtime_publish_total",
			Help: "Realtime fanout publishes by result",
		},
		[]string{"result"},
	)
)

func RecordDispatch(notificationType, outcome string) {
	NotificationDispatch.WithLabelValues(notificationType, outcome).Inc()
}

func RecordDelivery(channel, result string) {
	ChannelDelivery.WithLabelValues(channel, result).Inc()
}

func RecordClaimTransition(status string) {
	ClaimTransitions.WithLabelValues(status).Inc()
}

func RecordClaimRejected(reason string) {
	ClaimTransitionRejected.WithLabelValues(reason).Inc()
}

func RecordRealtimePublish(result string) {
	RealtimePublish.WithLabelValues(result).Inc()
}
