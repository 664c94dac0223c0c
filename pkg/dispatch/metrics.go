package dispatch

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the dispatcher's prometheus collectors. A nil *Metrics is
// valid and counts nothing.
type Metrics struct {
	eventsTotal   *prometheus.CounterVec
	failuresTotal prometheus.Counter
	outboundTotal prometheus.Counter
}

// NewMetrics creates and registers the dispatcher collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "charabot_events_total",
				Help: "Inbound events by type.",
			},
			[]string{"type"},
		),
		failuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "charabot_dispatch_failures_total",
				Help: "Events that ended in the generic fallback message.",
			},
		),
		outboundTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "charabot_outbound_messages_total",
				Help: "Messages sent to users.",
			},
		),
	}
	reg.MustRegister(m.eventsTotal, m.failuresTotal, m.outboundTotal)
	return m
}

func (m *Metrics) countEvent(eventType string) {
	if m != nil {
		m.eventsTotal.WithLabelValues(eventType).Inc()
	}
}

func (m *Metrics) countFailure() {
	if m != nil {
		m.failuresTotal.Inc()
	}
}

func (m *Metrics) countOutbound(n int) {
	if m != nil {
		m.outboundTotal.Add(float64(n))
	}
}
