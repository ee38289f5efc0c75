// Package jumphash provides a deterministic mapping from arbitrary keys
// to one of n numbered slots, such that growing or shrinking n leaves
// the vast majority of keys on their previous slot (consistent hashing).
//
// Keys are digested with SipHash-1-3 keyed by a 128-bit secret, then
// routed through Google's jump consistent hash
// (https://arxiv.org/abs/1406.2294). Typical uses: spreading cache
// entries, shard assignments or client connections across a variable
// number of homogeneous destinations, without a lookup table and
// without reshuffling most keys when the destination count changes.
//
//	jh := jumphash.New()
//	slot := jh.SlotString("user:42", 100)
//
// The fixed outputs of a hasher keyed with NewWithKeys are part of the
// public contract: they match the reference implementation bit for bit,
// so deployments mixing languages can agree on slot assignment.
package jumphash

import (
	"crypto/rand"
	"encoding/binary"
	"hash"

	"github.com/samber/jumphash/pkg/jump"
	"github.com/samber/jumphash/pkg/sip13"
)

// terminator closes the byte framing of every key, so a key encoding is
// never a prefix of another. It is part of the serialization scheme and
// required to reproduce the reference outputs.
var terminator = [1]byte{0xff}

// JumpHasher maps keys to slots. It is logically immutable: the only
// state is the digest constructor capturing the secret, a fresh digest
// is built for every call, and no call mutates the instance, so a
// single JumpHasher may be shared by any number of goroutines without
// synchronization.
type JumpHasher struct {
	newDigest func() hash.Hash64
}

// New returns a JumpHasher keyed with a random 128-bit secret drawn
// from crypto/rand. Two hashers built this way will, with overwhelming
// probability, disagree on slot assignments; use NewWithKeys when
// independent processes must agree.
//
// New panics if the system random source is unavailable. This is
// distinct from usage errors: it means the process cannot produce
// secrets at all.
func New() *JumpHasher {
	var seed [16]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic("jumphash: random source unavailable: " + err.Error())
	}
	return NewWithKeys(
		binary.LittleEndian.Uint64(seed[0:8]),
		binary.LittleEndian.Uint64(seed[8:16]),
	)
}

// NewWithKeys returns a JumpHasher keyed with a deterministic 128-bit
// secret. All hashers built from the same (k1, k2) compute identical
// slot assignments, across processes, platforms and conforming
// implementations in other languages.
func NewWithKeys(k1 uint64, k2 uint64) *JumpHasher {
	return NewCustom(func() hash.Hash64 {
		return sip13.New(k1, k2)
	})
}

// NewCustom returns a JumpHasher digesting keys with a caller-supplied
// algorithm instead of the default SipHash-1-3. newDigest is invoked
// once per call and must return an independent state each time, so
// concurrent calls never share an absorbing hash. Any hash.Hash64
// works: cespare/xxhash, zeebo/xxh3, spaolacci/murmur3, the stdlib
// fnv/crc64, or a re-keyed sip13.
func NewCustom(newDigest func() hash.Hash64) *JumpHasher {
	assertValue(newDigest != nil, "jumphash: digest constructor must not be nil")
	return &JumpHasher{newDigest: newDigest}
}

// Slot returns the slot for the given key, out of slotCount available
// slots. The result is always in [0, slotCount), and is a pure function
// of (secret, key, slotCount): raising slotCount to slotCount+1 moves
// only the keys that land on the new last slot.
//
// Slot panics when slotCount is 0, since the contract (result below
// slotCount) is unsatisfiable; it never returns a bogus index.
func (h *JumpHasher) Slot(key []byte, slotCount uint32) uint32 {
	return jump.Hash(h.Sum64(key), slotCount)
}

// SlotString is Slot for string keys. The byte serialization of a
// string key is its raw bytes, so SlotString(s, n) == Slot([]byte(s), n).
func (h *JumpHasher) SlotString(key string, slotCount uint32) uint32 {
	return jump.Hash(h.Sum64String(key), slotCount)
}

// SlotUint64 is Slot for integer keys, serialized as 8 little-endian
// bytes. Useful as a building block for composite keys.
func (h *JumpHasher) SlotUint64(key uint64, slotCount uint32) uint32 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], key)
	return h.Slot(b[:], slotCount)
}

// Sum64 returns the keyed 64-bit digest of the key, before slot
// selection. Exposed for callers that feed the digest into their own
// placement logic (replica picking, rendezvous mixing, ...).
func (h *JumpHasher) Sum64(key []byte) uint64 {
	d := h.newDigest()
	_, _ = d.Write(key)
	_, _ = d.Write(terminator[:])
	return d.Sum64()
}

// Sum64String is Sum64 for string keys.
func (h *JumpHasher) Sum64String(key string) uint64 {
	d := h.newDigest()
	_, _ = d.Write([]byte(key))
	_, _ = d.Write(terminator[:])
	return d.Sum64()
}
