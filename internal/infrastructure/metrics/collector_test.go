package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveDecision("vendor_reads_record", true)
	c.ObserveDecision("vendor_reads_record", true)
	c.ObserveDecision("vendor_reads_record", false)
	c.ObserveOutcome("vendor_reads_record", "not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.decisions.WithLabelValues("vendor_reads_record", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.decisions.WithLabelValues("vendor_reads_record", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.outcomes.WithLabelValues("vendor_reads_record", "not_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.decisions))
}
