package chooser

import (
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
	metro "github.com/dgryski/go-metro"
	"github.com/stretchr/testify/assert"
	"github.com/zeebo/xxh3"

	"github.com/samber/jumphash"
)

func fixedHasher() KeyHasher {
	return jumphash.NewWithKeys(0, 0).Sum64
}

func buckets(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("node-%d.example.com:11211", i)
	}
	return out
}

func TestNew(t *testing.T) {
	is := assert.New(t)

	c := New(fixedHasher(), buckets(3)...)
	is.Equal(buckets(3), c.Buckets())

	// A nil hasher falls back to a randomly keyed digest.
	c = New(nil, buckets(3)...)
	is.NotNil(c.hasher)
}

func TestChoose(t *testing.T) {
	is := assert.New(t)

	c := New(fixedHasher(), buckets(10)...)
	for i := 0; i < 1000; i++ {
		key := fmt.Sprintf("key-%d", i)
		chosen := c.Choose(key)
		is.Contains(c.Buckets(), chosen)
		is.Equal(chosen, c.Choose(key), "assignment must be stable")
	}
}

func TestChooseEmptyPanics(t *testing.T) {
	is := assert.New(t)

	c := New(fixedHasher())
	is.Panics(func() { c.Choose("key") })
}

func TestChooseConsistencyOnGrowth(t *testing.T) {
	is := assert.New(t)

	// Appending one bucket to ten should relocate roughly 1/11 of the
	// keys and no more.
	c := New(fixedHasher(), buckets(10)...)
	const keys = 10000
	before := make([]string, keys)
	for i := 0; i < keys; i++ {
		before[i] = c.Choose(fmt.Sprintf("key-%d", i))
	}

	c.SetBuckets(buckets(11))
	moved := 0
	for i := 0; i < keys; i++ {
		after := c.Choose(fmt.Sprintf("key-%d", i))
		if after != before[i] {
			moved++
			is.Equal("node-10.example.com:11211", after, "relocated keys may only land on the new bucket")
		}
	}
	is.Greater(moved, 0)
	is.Less(moved, keys*15/100)
}

func TestChooseReplicas(t *testing.T) {
	is := assert.New(t)

	c := New(fixedHasher(), buckets(10)...)
	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key-%d", i)
		replicas := c.ChooseReplicas(key, 3)
		is.Len(replicas, 3)
		is.Equal(c.Choose(key), replicas[0], "primary replica must match Choose")

		seen := map[string]bool{}
		for _, r := range replicas {
			is.Contains(c.Buckets(), r)
			is.False(seen[r], "replicas must be distinct")
			seen[r] = true
		}

		is.Equal(replicas, c.ChooseReplicas(key, 3), "replica sets must be stable")
	}
}

func TestChooseReplicasAll(t *testing.T) {
	is := assert.New(t)

	c := New(fixedHasher(), buckets(5)...)
	replicas := c.ChooseReplicas("key", 5)
	is.ElementsMatch(buckets(5), replicas)
}

func TestChooseReplicasTooManyPanics(t *testing.T) {
	is := assert.New(t)

	c := New(fixedHasher(), buckets(3)...)
	is.Panics(func() { c.ChooseReplicas("key", 4) })
}

func TestCustomKeyHashers(t *testing.T) {
	is := assert.New(t)

	hashers := map[string]KeyHasher{
		"xxhash": xxhash.Sum64,
		"xxh3":   xxh3.Hash,
		"metro":  func(b []byte) uint64 { return metro.Hash64(b, 0) },
	}

	for name, hasher := range hashers {
		a := New(hasher, buckets(10)...)
		b := New(hasher, buckets(10)...)
		for i := 0; i < 100; i++ {
			key := fmt.Sprintf("key-%d", i)
			is.Equal(a.Choose(key), b.Choose(key), "hasher %s must be deterministic across instances", name)
		}
	}
}

func BenchmarkChoose(b *testing.B) {
	c := New(fixedHasher(), buckets(100)...)
	for n := b.N; n > 0; n-- {
		_ = c.Choose("benchmark-key")
	}
}
