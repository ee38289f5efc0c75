package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Collector = (*PrometheusCollector)(nil)
var _ prometheus.Collector = (*PrometheusCollector)(nil)

// PrometheusCollector implements Collector using Prometheus metrics.
type PrometheusCollector struct {
	name   string
	labels prometheus.Labels

	// Counters - use atomic operations for lock-free performance
	lookupCount int64

	// Gauges
	slotCount int64

	// Prometheus metric descriptors
	lookupDesc    *prometheus.Desc
	slotCountDesc *prometheus.Desc
}

// NewPrometheusCollector creates a new Prometheus-based metric collector.
// The name labels every metric, so several hashers can be registered on
// the same registry.
func NewPrometheusCollector(name string) *PrometheusCollector {
	labels := prometheus.Labels{
		"name": name,
	}

	collector := &PrometheusCollector{
		name:   name,
		labels: labels,
	}

	collector.lookupDesc = prometheus.NewDesc(
		"jumphash_lookup_total",
		"Total number of slot lookups performed",
		nil, labels,
	)
	collector.slotCountDesc = prometheus.NewDesc(
		"jumphash_slot_count",
		"Slot count supplied with the most recent lookup",
		nil, labels,
	)

	return collector
}

// IncLookup atomically increments the lookup counter.
func (p *PrometheusCollector) IncLookup() {
	atomic.AddInt64(&p.lookupCount, 1)
}

// AddLookups atomically adds the specified count to the lookup counter.
func (p *PrometheusCollector) AddLookups(count int64) {
	atomic.AddInt64(&p.lookupCount, count)
}

// UpdateSlotCount atomically records the slot count of the last lookup.
func (p *PrometheusCollector) UpdateSlotCount(slotCount uint32) {
	atomic.StoreInt64(&p.slotCount, int64(slotCount))
}

// Describe implements prometheus.Collector interface.
func (p *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- p.lookupDesc
	ch <- p.slotCountDesc
}

// Collect implements prometheus.Collector interface.
func (p *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(
		p.lookupDesc,
		prometheus.CounterValue,
		float64(atomic.LoadInt64(&p.lookupCount)),
	)
	ch <- prometheus.MustNewConstMetric(
		p.slotCountDesc,
		prometheus.GaugeValue,
		float64(atomic.LoadInt64(&p.slotCount)),
	)
}
