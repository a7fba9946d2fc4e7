package metrics

import (
	joinwaitlist "waitlist/internal/core/services/join_waitlist"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "waitlist"

// Prometheus counts signup outcomes and confirmation submissions.
type Prometheus struct {
	signups       *prometheus.CounterVec
	confirmations *prometheus.CounterVec
}

func NewPrometheus(registerer prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Waitlist signups by outcome.",
		}, []string{"outcome"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confirmations_total",
			Help:      "Confirmation emails by provider submission result.",
		}, []string{"result"}),
	}
	registerer.MustRegister(p.signups, p.confirmations)
	return p
}

func (p *Prometheus) RecordOutcome(outcome joinwaitlist.Outcome) {
	p.signups.WithLabelValues(string(outcome)).Inc()
}

func (p *Prometheus) RecordConfirmation(sent bool) {
	result := "failed"
	if sent {
		result = "sent"
	}
	p.confirmations.WithLabelValues(result).Inc()
}
