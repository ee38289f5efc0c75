package metrics

import (
	"github.com/samber/jumphash"
)

// SlotHasher is the slot assignment surface of jumphash.JumpHasher.
type SlotHasher interface {
	Slot(key []byte, slotCount uint32) uint32
	SlotString(key string, slotCount uint32) uint32
	SlotUint64(key uint64, slotCount uint32) uint32
}

var _ SlotHasher = (*jumphash.JumpHasher)(nil)
var _ SlotHasher = (*InstrumentedHasher)(nil)

// NewInstrumentedHasher creates a new metrics wrapper around an existing hasher.
func NewInstrumentedHasher(hasher SlotHasher, metrics Collector) *InstrumentedHasher {
	return &InstrumentedHasher{
		hasher:  hasher,
		metrics: metrics,
	}
}

// InstrumentedHasher wraps any SlotHasher implementation and adds metrics
// collection. It delegates all lookups to the underlying hasher while
// tracking lookup counts, so instrumented and bare hashers always agree
// on slot assignment.
type InstrumentedHasher struct {
	hasher  SlotHasher
	metrics Collector
}

// Slot assigns a slot to a byte key and tracks lookup metrics.
func (m *InstrumentedHasher) Slot(key []byte, slotCount uint32) uint32 {
	slot := m.hasher.Slot(key, slotCount)
	m.metrics.IncLookup()
	m.metrics.UpdateSlotCount(slotCount)
	return slot
}

// SlotString assigns a slot to a string key and tracks lookup metrics.
func (m *InstrumentedHasher) SlotString(key string, slotCount uint32) uint32 {
	slot := m.hasher.SlotString(key, slotCount)
	m.metrics.IncLookup()
	m.metrics.UpdateSlotCount(slotCount)
	return slot
}

// SlotUint64 assigns a slot to an integer key and tracks lookup metrics.
func (m *InstrumentedHasher) SlotUint64(key uint64, slotCount uint32) uint32 {
	slot := m.hasher.SlotUint64(key, slotCount)
	m.metrics.IncLookup()
	m.metrics.UpdateSlotCount(slotCount)
	return slot
}
