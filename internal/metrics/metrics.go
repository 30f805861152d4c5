package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OnlineConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pingme_online_conns",
		Help: "Current online websocket connections.",
	})

	MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pingme_messages_sent_total",
		Help: "Total messages persisted via message:send.",
	})
	MessagesDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pingme_messages_delivered_total",
		Help: "Total messages delivered at send time (recipient online).",
	})
	ReadReceipts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pingme_read_receipts_total",
		Help: "Total read receipts that transitioned at least one message.",
	})
	EventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pingme_events_dropped_total",
		Help: "Total events dropped because a client send queue was full.",
	})
)

func Register() {
	prometheus.MustRegister(
		OnlineConns,
		MessagesSent, MessagesDelivered, ReadReceipts,
		EventsDropped,
	)
}
