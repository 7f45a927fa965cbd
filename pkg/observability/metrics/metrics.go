// Package metrics provides a small dependency-free metrics collection system
// with Prometheus text exposition.
package metrics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

// MetricType represents the type of metric.
type MetricType string

// Supported metric types.
const (
	TypeCounter   MetricType = "counter"
	TypeGauge     MetricType = "gauge"
	TypeHistogram MetricType = "histogram"
)

// Metric is the base interface for all metrics.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	// Describe returns the metric in Prometheus text format.
	Describe() string
}

// Counter is a monotonically increasing value.
type Counter interface {
	Metric
	Inc()
	Add(uint64)
	Get() uint64
}

// Gauge is a value that can go up and down.
type Gauge interface {
	Metric
	Set(float64)
	Inc()
	Dec()
	Get() float64
}

// Histogram samples observations into cumulative buckets.
type Histogram interface {
	Metric
	Observe(float64)
	Count() uint64
	Sum() float64
}

type baseMetric struct {
	name string
	help string
	typ  MetricType
}

func (m *baseMetric) Name() string     { return m.name }
func (m *baseMetric) Help() string     { return m.help }
func (m *baseMetric) Type() MetricType { return m.typ }

type counter struct {
	baseMetric
	val uint64
}

// NewCounter creates and registers nothing; callers register explicitly.
func NewCounter(name, help string) Counter {
	return &counter{baseMetric: baseMetric{name: name, help: help, typ: TypeCounter}}
}

func (c *counter) Inc()         { atomic.AddUint64(&c.val, 1) }
func (c *counter) Add(v uint64) { atomic.AddUint64(&c.val, v) }
func (c *counter) Get() uint64  { return atomic.LoadUint64(&c.val) }

func (c *counter) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# HELP %s %s\n", c.name, c.help)
	fmt.Fprintf(&sb, "# TYPE %s %s\n", c.name, c.typ)
	fmt.Fprintf(&sb, "%s %d\n", c.name, c.Get())
	return sb.String()
}

type gauge struct {
	baseMetric
	bits uint64 // float64 bits for atomic access
}

// NewGauge creates a new Gauge metric.
func NewGauge(name, help string) Gauge {
	return &gauge{baseMetric: baseMetric{name: name, help: help, typ: TypeGauge}}
}

func (g *gauge) Set(v float64) { atomic.StoreUint64(&g.bits, math.Float64bits(v)) }
func (g *gauge) Get() float64  { return math.Float64frombits(atomic.LoadUint64(&g.bits)) }
func (g *gauge) Inc()          { g.add(1) }
func (g *gauge) Dec()          { g.add(-1) }

func (g *gauge) add(v float64) {
	for {
		oldBits := atomic.LoadUint64(&g.bits)
		newBits := math.Float64bits(math.Float64frombits(oldBits) + v)
		if atomic.CompareAndSwapUint64(&g.bits, oldBits, newBits) {
			return
		}
	}
}

func (g *gauge) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# HELP %s %s\n", g.name, g.help)
	fmt.Fprintf(&sb, "# TYPE %s %s\n", g.name, g.typ)
	fmt.Fprintf(&sb, "%s %.6f\n", g.name, g.Get())
	return sb.String()
}

type histogram struct {
	baseMetric
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
	mu      sync.RWMutex
}

// DefaultLatencyBuckets suit request latencies in seconds.
var DefaultLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// NewHistogram creates a new Histogram metric with the given bucket bounds.
func NewHistogram(name, help string, buckets []float64) Histogram {
	if len(buckets) == 0 {
		buckets = DefaultLatencyBuckets
	}
	sorted := make([]float64, len(buckets))
	copy(sorted, buckets)
	sort.Float64s(sorted)
	return &histogram{
		baseMetric: baseMetric{name: name, help: help, typ: TypeHistogram},
		buckets:    sorted,
		counts:     make([]uint64, len(sorted)),
	}
}

func (h *histogram) Observe(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += v
	for i, bound := range h.buckets {
		if v <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Count() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *histogram) Sum() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sum
}

func (h *histogram) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# HELP %s %s\n", h.name, h.help)
	fmt.Fprintf(&sb, "# TYPE %s %s\n", h.name, h.typ)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for i, bound := range h.buckets {
		fmt.Fprintf(&sb, "%s_bucket{le=%q} %d\n", h.name, formatBound(bound), h.counts[i])
	}
	fmt.Fprintf(&sb, "%s_bucket{le=\"+Inf\"} %d\n", h.name, h.count)
	fmt.Fprintf(&sb, "%s_sum %.6f\n", h.name, h.sum)
	fmt.Fprintf(&sb, "%s_count %d\n", h.name, h.count)
	return sb.String()
}

func formatBound(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", v), "0"), ".")
}
