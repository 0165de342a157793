package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Degradation counts the paths where a request keeps going after swallowing
// a failure: image normalization fallbacks and malformed gallery delete lists.
type Degradation struct {
	normalizeFallback *prometheus.CounterVec
	malformedDeletes  prometheus.Counter
	compensations     *prometheus.CounterVec
}

// NewDegradation registers the counters on the provided registerer. A nil
// registerer yields a no-op collector.
func NewDegradation(reg prometheus.Registerer) *Degradation {
	if reg == nil {
		return &Degradation{}
	}
	normalizeFallback := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "image_normalize_fallback_total",
		Help: "Uploads stored with their original bytes because normalization failed.",
	}, []string{"reason"})
	malformedDeletes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "room_deleted_images_malformed_total",
		Help: "Room updates whose deleted_images value could not be parsed.",
	})
	compensations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_compensation_total",
		Help: "Stored objects removed after their transaction rolled back.",
	}, []string{"result"})
	reg.MustRegister(normalizeFallback, malformedDeletes, compensations)
	return &Degradation{
		normalizeFallback: normalizeFallback,
		malformedDeletes:  malformedDeletes,
		compensations:     compensations,
	}
}

// IncNormalizeFallback increments the fallback counter for the given reason.
func (d *Degradation) IncNormalizeFallback(reason string) {
	if d == nil || d.normalizeFallback == nil {
		return
	}
	d.normalizeFallback.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (d *Degradation) IncMalformedDeletes() {
	if d == nil || d.malformedDeletes == nil {
		return
	}
	d.malformedDeletes.Inc()
}

// IncCompensation records the outcome of removing an orphaned object.
func (d *Degradation) IncCompensation(ok bool) {
	if d == nil || d.compensations == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	d.compensations.WithLabelValues(result).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
