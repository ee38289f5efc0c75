// Package metrics provides observability for slot assignment: a
// Collector interface with a Prometheus-backed implementation and a
// no-op twin, plus an InstrumentedHasher wrapper that counts lookups
// without touching the hashing hot path semantics.
package metrics

// NewCollector creates a new metric collector based on whether metrics
// are enabled.
func NewCollector(enabled bool, name string) Collector {
	if !enabled {
		return &NoOpCollector{}
	}
	return NewPrometheusCollector(name)
}

// Collector defines the interface for metric collection operations.
// This allows for both real Prometheus metrics and no-op implementations.
type Collector interface {
	IncLookup()
	AddLookups(count int64)
	UpdateSlotCount(slotCount uint32)
}
