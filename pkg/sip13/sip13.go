// Package sip13 implements SipHash-1-3, a keyed 64-bit pseudo-random
// function by Aumasson and Bernstein (https://131002.net/siphash/).
// The 1-3 variant runs one compression round per message block and
// three finalization rounds, trading a security margin the consistent
// hashing use case does not need for roughly twice the throughput of
// SipHash-2-4.
//
// Digest implements hash.Hash64 so it can be swapped for any other
// 64-bit hash. Outputs are keyed with a 128-bit secret, making them
// unpredictable to parties that do not hold the key.
package sip13

import (
	"encoding/binary"
	"math/bits"
)

// Initialization constants, "somepseudorandomlygeneratedbytes" from
// the SipHash reference implementation.
const (
	initV0 = 0x736f6d6570736575
	initV1 = 0x646f72616e646f6d
	initV2 = 0x6c7967656e657261
	initV3 = 0x7465646279746573
)

// Digest is a streaming SipHash-1-3 state keyed with a 128-bit secret.
// The zero value is not usable; construct with New. A Digest is not
// safe for concurrent use, but constructing one per call is cheap
// (no heap beyond the struct itself), so concurrent callers should
// each build their own from the same key pair.
type Digest struct {
	v0, v1, v2, v3 uint64
	k0, k1         uint64

	buf    [8]byte // incomplete block
	n      int     // number of bytes buffered in buf
	length uint64  // total number of bytes absorbed
}

// New creates a Digest keyed with the two 64-bit halves of the secret.
func New(k0, k1 uint64) *Digest {
	d := &Digest{k0: k0, k1: k1}
	d.Reset()
	return d
}

// Reset restores the freshly keyed state, discarding any absorbed
// input. After Reset the Digest behaves exactly like a new instance
// built from the same keys, which makes re-keyed per-call states cheap.
func (d *Digest) Reset() {
	d.v0 = initV0 ^ d.k0
	d.v1 = initV1 ^ d.k1
	d.v2 = initV2 ^ d.k0
	d.v3 = initV3 ^ d.k1
	d.n = 0
	d.length = 0
}

// Size returns the number of bytes Sum appends: 8.
func (d *Digest) Size() int { return 8 }

// BlockSize returns the hash block size: 8 bytes.
func (d *Digest) BlockSize() int { return 8 }

// Write absorbs p into the hash state. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	n := len(p)
	d.length += uint64(n)

	if d.n > 0 {
		c := copy(d.buf[d.n:], p)
		d.n += c
		if d.n < len(d.buf) {
			return n, nil
		}
		d.compress(binary.LittleEndian.Uint64(d.buf[:]))
		d.n = 0
		p = p[c:]
	}

	for len(p) >= 8 {
		d.compress(binary.LittleEndian.Uint64(p))
		p = p[8:]
	}

	d.n = copy(d.buf[:], p)
	return n, nil
}

// Sum64 finalizes the hash over everything written so far and returns
// the 64-bit digest. It does not change the running state, so more
// bytes may be written afterwards.
func (d *Digest) Sum64() uint64 {
	v0, v1, v2, v3 := d.v0, d.v1, d.v2, d.v3

	// Final block: remaining tail bytes, with the total length mod 256
	// in the most significant byte.
	m := d.length << 56
	for i := d.n - 1; i >= 0; i-- {
		m |= uint64(d.buf[i]) << (8 * uint(i))
	}

	v3 ^= m
	v0, v1, v2, v3 = round(v0, v1, v2, v3)
	v0 ^= m

	v2 ^= 0xff
	v0, v1, v2, v3 = round(v0, v1, v2, v3)
	v0, v1, v2, v3 = round(v0, v1, v2, v3)
	v0, v1, v2, v3 = round(v0, v1, v2, v3)

	return v0 ^ v1 ^ v2 ^ v3
}

// Sum appends the big-endian 8-byte digest to b and returns the
// resulting slice, without changing the running state.
func (d *Digest) Sum(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, d.Sum64())
}

func (d *Digest) compress(m uint64) {
	d.v3 ^= m
	d.v0, d.v1, d.v2, d.v3 = round(d.v0, d.v1, d.v2, d.v3)
	d.v0 ^= m
}

// round is one SipRound of the ARX permutation.
func round(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 += v1
	v1 = bits.RotateLeft64(v1, 13)
	v1 ^= v0
	v0 = bits.RotateLeft64(v0, 32)

	v2 += v3
	v3 = bits.RotateLeft64(v3, 16)
	v3 ^= v2

	v0 += v3
	v3 = bits.RotateLeft64(v3, 21)
	v3 ^= v0

	v2 += v1
	v1 = bits.RotateLeft64(v1, 17)
	v1 ^= v2
	v2 = bits.RotateLeft64(v2, 32)

	return v0, v1, v2, v3
}
