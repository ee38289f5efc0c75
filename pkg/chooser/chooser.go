// Package chooser maps keys to members of a named bucket list (server
// addresses, shard names, queue topics) using the jump consistent
// hash. It only computes assignments; it does not store or move data.
//
// When the bucket list grows, only the keys assigned to the new
// buckets change owner; all other keys keep their previous bucket.
// Bucket order is significant: two choosers agree on assignments only
// if their bucket slices are identical.
package chooser

import (
	"github.com/samber/jumphash"
	"github.com/samber/jumphash/pkg/jump"
)

// KeyHasher turns a key into the 64-bit value fed to the jump hash.
// Good candidates are keyed (jumphash.Sum64, siphash) or fast unkeyed
// hashes (xxhash, xxh3, metro).
type KeyHasher func([]byte) uint64

// Chooser assigns keys to buckets. It is not safe for concurrent use
// with SetBuckets; callers that mutate the bucket list must provide
// their own synchronization. Read-only use is safe from any number of
// goroutines.
type Chooser struct {
	hasher  KeyHasher
	buckets []string
}

// New creates a Chooser over the given buckets. A nil hasher selects
// the default: a randomly keyed jumphash digest, meaning two choosers
// in different processes will not agree on assignments unless a shared
// hasher is supplied.
func New(hasher KeyHasher, buckets ...string) *Chooser {
	if hasher == nil {
		hasher = jumphash.New().Sum64
	}
	c := &Chooser{hasher: hasher}
	c.SetBuckets(buckets)
	return c
}

// SetBuckets replaces the bucket list. Assignments for keys mapping to
// surviving positions are unchanged; appending buckets relocates only
// the keys that land on the new positions.
func (c *Chooser) SetBuckets(buckets []string) {
	c.buckets = c.buckets[:0]
	c.buckets = append(c.buckets, buckets...)
}

// Buckets returns the current bucket list.
func (c *Chooser) Buckets() []string {
	return c.buckets
}

// Choose returns the bucket owning the given key. It panics when the
// bucket list is empty, since no assignment exists.
func (c *Chooser) Choose(key string) string {
	assertValue(len(c.buckets) > 0, "chooser: no buckets configured")
	return c.buckets[jump.Hash(c.hasher([]byte(key)), uint32(len(c.buckets)))]
}

// ChooseReplicas returns n distinct buckets for the given key, primary
// first. Successive replicas are picked by removing the chosen bucket
// from a scratch list and advancing the key hash with a xorshift
// multiply step, so replica sets stay mostly stable as buckets come
// and go. It panics when n exceeds the number of buckets.
func (c *Chooser) ChooseReplicas(key string, n int) []string {
	assertValue(n <= len(c.buckets), "chooser: more replicas requested than buckets")

	hkey := c.hasher([]byte(key))

	candidates := make([]int, len(c.buckets))
	for i := range candidates {
		candidates[i] = i
	}

	replicas := make([]string, n)
	for i := 0; i < n; i++ {
		b := jump.Hash(hkey, uint32(len(candidates)))

		replicas[i] = c.buckets[candidates[b]]

		candidates[b] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		hkey = xorshiftMult64(hkey)
	}

	return replicas
}

// 64-bit xorshift multiply rng from
// http://vigna.di.unimi.it/ftp/papers/xorshift.pdf
func xorshiftMult64(x uint64) uint64 {
	x ^= x >> 12 // a
	x ^= x << 25 // b
	x ^= x >> 27 // c
	return x * 2685821657736338717
}

func assertValue(ok bool, msg string) {
	if !ok {
		panic(msg)
	}
}
