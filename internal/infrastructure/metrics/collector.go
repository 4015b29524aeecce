package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts authorization decisions and operation outcomes.
type Collector struct {
	decisions *prometheus.CounterVec
	outcomes  *prometheus.CounterVec
}

// New registers the counters on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "authorization_decisions_total",
			Help:      "Role checks by operation and result.",
		}, []string{"operation", "allowed"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "operation_outcomes_total",
			Help:      "Completed operations by error kind, ok on success.",
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(c.decisions, c.outcomes)
	return c
}

func (c *Collector) ObserveDecision(operation string, allowed bool) {
	c.decisions.WithLabelValues(operation, strconv.FormatBool(allowed)).Inc()
}

func (c *Collector) ObserveOutcome(operation, outcome string) {
	c.outcomes.WithLabelValues(operation, outcome).Inc()
}
