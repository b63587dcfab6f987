package bloom

import "github.com/spaolacci/murmur3"

// Hash64 is the underlying non-cryptographic hash primitive: a 64-bit digest
// of data under seed.
type Hash64 func(data []byte, seed uint32) uint64

// Murmur3 is the default Hash64, the first half of MurmurHash3 x64_128.
func Murmur3(data []byte, seed uint32) uint64 {
	return murmur3.Sum64WithSeed(data, seed)
}

// hashPair derives the two base hashes for double hashing.
func hashPair(hash Hash64, elem []byte) (h1 uint64, h2 uint64) {
	return hash(elem, SeedH1), hash(elem, SeedH2)
}

// Index positions follow Kirsch-Mitzenmacher double hashing:
//
//	index_i = (h1 + i*h2) mod bitLength,  i in [0, k)
//
// with h1 + i*h2 evaluated in wrapping uint64 arithmetic.

func setBitsLSB0(a *BitArray, k uint32, h1, h2 uint64) {
	for i := uint64(0); i < uint64(k); i++ {
		a.set((h1 + i*h2) % a.length)
	}
}

func testBitsLSB0(a *BitArray, k uint32, h1, h2 uint64) bool {
	for i := uint64(0); i < uint64(k); i++ {
		if !a.get((h1 + i*h2) % a.length) {
			return false
		}
	}
	return true
}

// testAndSetBitsLSB0 sets all k bits and reports whether they were all set
// beforehand.
func testAndSetBitsLSB0(a *BitArray, k uint32, h1, h2 uint64) bool {
	present := true
	for i := uint64(0); i < uint64(k); i++ {
		j := (h1 + i*h2) % a.length
		if !a.get(j) {
			present = false
			a.set(j)
		}
	}
	return present
}
