package yx5300

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts traffic on the serial link.
type Metrics struct {
	FramesSent    *prometheus.CounterVec // labels: command
	Queries       *prometheus.CounterVec // labels: command, result=ok|timeout|error
	Discarded     prometheus.Counter
	QueryDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FramesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yx5300_frames_sent_total",
			Help: "Command frames written to the module.",
		}, []string{"command"}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yx5300_queries_total",
			Help: "Query exchanges by outcome.",
		}, []string{"command", "result"}),
		Discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yx5300_replies_discarded_total",
			Help: "Reply frames dropped for echoing another command.",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "yx5300_query_duration_seconds",
			Help:    "Time from query send to matching reply.",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 3},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.FramesSent, m.Queries, m.Discarded, m.QueryDuration)
	}
	return m
}

func (m *Metrics) frameSent(cmd Command) {
	if m == nil {
		return
	}
	m.FramesSent.WithLabelValues(cmd.String()).Inc()
}

func (m *Metrics) query(cmd Command, result string, discarded int, seconds float64) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(cmd.String(), result).Inc()
	m.Discarded.Add(float64(discarded))
	if result == "ok" {
		m.QueryDuration.Observe(seconds)
	}
}
