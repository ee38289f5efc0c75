// Package jump implements Google's jump consistent hash function
// (https://arxiv.org/abs/1406.2294). It maps a 64-bit key to a bucket
// index in O(log n) iterations using no memory beyond a few registers,
// and guarantees that growing the bucket count from n to n+1 only
// reassigns the keys that land on the new bucket n.
package jump

// Hash maps a 64-bit key to a bucket index in [0, buckets).
//
// The recurrence advances a linear-congruential state and computes, at
// each step, the furthest bucket the key jumps to. The arithmetic must
// stay exactly as written: unsigned 64-bit wraparound on the state
// update, and the jump distance computed in IEEE-754 double precision
// truncated toward zero. Changing either silently relocates keys, so
// the fixed outputs are part of the public contract and pinned by
// regression tests.
//
// buckets must be >= 1. Hash panics when buckets is 0, since no valid
// index exists.
func Hash(key uint64, buckets uint32) uint32 {
	assertValue(buckets >= 1, "jump: buckets must be greater than 0")

	var b, j int64 = -1, 0
	for j < int64(buckets) {
		b = j
		key = key*2862933555777941757 + 1
		j = int64(float64(b+1) * (float64(int64(1)<<31) / float64((key>>33)+1)))
	}

	// The loop ran at least once (j starts at 0 < buckets), so b >= 0.
	return uint32(b)
}

// assertValue panics with the given message if the condition is false.
// This is used for validating caller-supplied parameters.
func assertValue(ok bool, msg string) {
	if !ok {
		panic(msg)
	}
}
