package hasher

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// Hash64 maps a byte sequence onto the 64-bit ring space.
type Hash64 func(data []byte) uint64

// XXHash computes a 64-bit xxHash digest. It is the default for rings
// constructed without an explicit hash function.
func XXHash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Murmur3 computes a 64-bit MurmurHash3 digest.
func Murmur3(data []byte) uint64 {
	return murmur3.Sum64(data)
}

// FNV64a computes a 64-bit FNV-1a digest.
func FNV64a(data []byte) uint64 {
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64()
}
