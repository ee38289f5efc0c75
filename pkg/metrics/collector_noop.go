package metrics

var _ Collector = (*NoOpCollector)(nil)

// NoOpCollector is a no-op implementation of Collector that does nothing.
// This provides better performance than conditional checks when metrics are disabled.
type NoOpCollector struct{}

func (n *NoOpCollector) IncLookup()                       {}
func (n *NoOpCollector) AddLookups(count int64)           {}
func (n *NoOpCollector) UpdateSlotCount(slotCount uint32) {}
