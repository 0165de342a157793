package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDegradationCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewDegradation(reg)

	m.IncNormalizeFallback("decode")
	m.IncNormalizeFallback("decode")
	m.IncNormalizeFallback("")
	m.IncMalformedDeletes()
	m.IncCompensation(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.normalizeFallback.WithLabelValues("decode")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.normalizeFallback.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.malformedDeletes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.compensations.WithLabelValues("error")))
}

func TestNilDegradationIsNoop(t *testing.T) {
	var m *Degradation
	assert.NotPanics(t, func() {
		m.IncNormalizeFallback("decode")
		m.IncMalformedDeletes()
		m.IncCompensation(true)
	})
	assert.NotPanics(t, func() {
		NewDegradation(nil).IncMalformedDeletes()
	})
}
