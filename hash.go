package probedmap

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dolthub/maphash"
	"golang.org/x/exp/constraints"
)

// HashFunc maps a key to its home slot. It must return a value in
// [0, capacity) and must return the same index for equal keys.
type HashFunc[K any] func(key K, capacity int) int

// Modulo hashes an integer key to key mod capacity. Negative keys wrap to a
// non-negative index.
func Modulo[K constraints.Integer]() HashFunc[K] {
	return func(key K, capacity int) int {
		if key < 0 {
			r := int64(key) % int64(capacity)
			if r < 0 {
				r += int64(capacity)
			}
			return int(r)
		}
		return int(uint64(key) % uint64(capacity))
	}
}

// XXHash hashes string keys with xxHash64.
func XXHash[K ~string]() HashFunc[K] {
	return func(key K, capacity int) int {
		return int(xxhash.Sum64String(string(key)) % uint64(capacity))
	}
}

// MapHash hashes any comparable key with the runtime's seeded map hash. The
// seed is fixed per returned HashFunc, so indexes are stable for the lifetime
// of a Map but differ between processes.
func MapHash[K comparable]() HashFunc[K] {
	h := maphash.NewHasher[K]()
	return func(key K, capacity int) int {
		return int(h.Hash(key) % uint64(capacity))
	}
}
