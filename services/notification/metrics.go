package notification

import (
	"context"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsGateway records send counts and latency around another gateway.
type MetricsGateway struct {
	gateway      PushGateway
	sendDuration *prometheus.HistogramVec
	sendTotal    *prometheus.CounterVec
}

// NewMetricsGateway wraps g and registers its collectors on reg.
func NewMetricsGateway(g PushGateway, reg prometheus.Registerer) *MetricsGateway {
	sendDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "push_send_duration_seconds",
			Help:    "Latency of push gateway send calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"type", "status"},
	)
	sendTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_send_total",
			Help: "Push gateway send calls by notification type and outcome.",
		},
		[]string{"type", "status"},
	)
	if reg != nil {
		reg.MustRegister(sendDuration, sendTotal)
	}
	return &MetricsGateway{
		gateway:      g,
		sendDuration: sendDuration,
		sendTotal:    sendTotal,
	}
}

// Send forwards the message and observes the outcome.
func (m *MetricsGateway) Send(ctx context.Context, message *messaging.Message) (string, error) {
	start := time.Now()
	id, err := m.gateway.Send(ctx, message)

	status := "ok"
	if err != nil {
		status = "error"
	}
	typ := message.Data["type"]
	m.sendTotal.WithLabelValues(typ, status).Inc()
	m.sendDuration.WithLabelValues(typ, status).Observe(time.Since(start).Seconds())
	return id, err
}
