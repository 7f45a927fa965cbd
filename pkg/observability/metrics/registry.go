package metrics

import (
	"sort"
	"strings"
	"sync"
)

// Registry manages a collection of metrics.
type Registry struct {
	metrics sync.Map // map[string]Metric
}

// NewRegistry creates a new metrics registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry is the global registry.
var DefaultRegistry = NewRegistry()

// Register registers a metric with the registry.
func (r *Registry) Register(m Metric) {
	r.metrics.Store(m.Name(), m)
}

// Register registers a metric with the default registry.
func Register(m Metric) {
	DefaultRegistry.Register(m)
}

// Export returns all metrics in Prometheus text format, sorted by name.
func (r *Registry) Export() string {
	var names []string
	r.metrics.Range(func(key, _ interface{}) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		if val, ok := r.metrics.Load(name); ok {
			sb.WriteString(val.(Metric).Describe())
		}
	}
	return sb.String()
}

// Export returns all metrics from the default registry in Prometheus text format.
func Export() string {
	return DefaultRegistry.Export()
}

// Reset clears all metrics from the registry. Tests use this.
func (r *Registry) Reset() {
	r.metrics.Range(func(key, _ interface{}) bool {
		r.metrics.Delete(key)
		return true
	})
}
