package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	c := NewCounter("test_counter_total", "A test counter.")
	c.Inc()
	c.Add(4)
	assert.Equal(t, uint64(5), c.Get())
	assert.Contains(t, c.Describe(), "test_counter_total 5")
	assert.Contains(t, c.Describe(), "# TYPE test_counter_total counter")
}

func TestGauge(t *testing.T) {
	g := NewGauge("test_gauge", "A test gauge.")
	g.Set(2.5)
	g.Inc()
	g.Dec()
	g.Dec()
	assert.InDelta(t, 1.5, g.Get(), 1e-9)
}

func TestHistogram(t *testing.T) {
	h := NewHistogram("test_duration_seconds", "A test histogram.", []float64{0.1, 1, 10})
	h.Observe(0.05)
	h.Observe(0.5)
	h.Observe(5)

	assert.Equal(t, uint64(3), h.Count())
	assert.InDelta(t, 5.55, h.Sum(), 1e-9)

	out := h.Describe()
	assert.Contains(t, out, `test_duration_seconds_bucket{le="0.1"} 1`)
	assert.Contains(t, out, `test_duration_seconds_bucket{le="1"} 2`)
	assert.Contains(t, out, `test_duration_seconds_bucket{le="10"} 3`)
	assert.Contains(t, out, `test_duration_seconds_bucket{le="+Inf"} 3`)
}

func TestRegistryExportSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(NewCounter("zzz_total", "Last."))
	r.Register(NewCounter("aaa_total", "First."))

	out := r.Export()
	assert.Less(t, strings.Index(out, "aaa_total"), strings.Index(out, "zzz_total"))
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry()
	r.Register(NewCounter("temp_total", "Temp."))
	r.Reset()
	assert.Empty(t, r.Export())
}
