package bloom

import "math"

// Filter is a Bloom filter over byte string elements.
//
// A Filter is not safe for concurrent use: Insert needs exclusive access,
// while Contains and the read-only accessors may share access. Wrap it in a
// Locked when goroutines share it.
type Filter struct {
	bits          *BitArray
	hashCount     uint32
	expectedItems uint64
	targetFPRate  float64
	insertedCount uint64
	hash          Hash64
}

// Options configure a Filter at construction or decode time.
type Options struct {
	// Hash derives h1 and h2. Nil selects Murmur3.
	Hash Hash64
}

// Option sets a field of Options.
type Option func(*Options)

// WithHash replaces the Murmur3 hash primitive. Filters must be decoded with
// the same primitive they were built with.
func WithHash(hash Hash64) Option {
	return func(o *Options) {
		o.Hash = hash
	}
}

func newOptions(opts []Option) Options {
	o := Options{Hash: Murmur3}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Hash == nil {
		o.Hash = Murmur3
	}
	return o
}

// New returns an empty filter sized by ComputeParameters for expectedItems
// elements at targetFPRate.
func New(expectedItems uint64, targetFPRate float64, opts ...Option) (*Filter, error) {
	bitLength, hashCount, err := ComputeParameters(expectedItems, targetFPRate)
	if err != nil {
		return nil, err
	}
	f, err := NewWithParameters(bitLength, hashCount, opts...)
	if err != nil {
		return nil, err
	}
	f.expectedItems = expectedItems
	f.targetFPRate = targetFPRate
	return f, nil
}

// NewWithParameters returns an empty filter with an explicit bit length and
// hash count. ExpectedItems and TargetFPRate report zero for such filters.
func NewWithParameters(bitLength uint64, hashCount uint32, opts ...Option) (*Filter, error) {
	if err := checkHashCount(hashCount); err != nil {
		return nil, err
	}
	bits, err := NewBitArray(bitLength)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return &Filter{
		bits:      bits,
		hashCount: hashCount,
		hash:      o.Hash,
	}, nil
}

// Insert adds elem. Any byte string, including an empty one, is accepted.
func (f *Filter) Insert(elem []byte) {
	h1, h2 := hashPair(f.hash, elem)
	setBitsLSB0(f.bits, f.hashCount, h1, h2)
	f.insertedCount++
}

// Contains reports whether elem is possibly present. false means elem was
// never inserted. true means it was inserted or is a false positive.
func (f *Filter) Contains(elem []byte) bool {
	h1, h2 := hashPair(f.hash, elem)
	return testBitsLSB0(f.bits, f.hashCount, h1, h2)
}

// TestAndInsert inserts elem and reports whether it was possibly present
// before the call.
func (f *Filter) TestAndInsert(elem []byte) bool {
	h1, h2 := hashPair(f.hash, elem)
	present := testAndSetBitsLSB0(f.bits, f.hashCount, h1, h2)
	f.insertedCount++
	return present
}

// InsertAll inserts every element of elems.
func (f *Filter) InsertAll(elems [][]byte) {
	for _, elem := range elems {
		f.Insert(elem)
	}
}

// ContainsAll returns Contains for each element of elems, in order.
func (f *Filter) ContainsAll(elems [][]byte) []bool {
	if len(elems) == 0 {
		return nil
	}
	results := make([]bool, len(elems))
	for i, elem := range elems {
		results[i] = f.Contains(elem)
	}
	return results
}

// InsertString inserts the bytes of elem.
func (f *Filter) InsertString(elem string) { f.Insert([]byte(elem)) }

// ContainsString is Contains for the bytes of elem.
func (f *Filter) ContainsString(elem string) bool { return f.Contains([]byte(elem)) }

// Indexes returns the hashCount bit positions elem maps to, in derivation
// order. Positions may repeat.
func (f *Filter) Indexes(elem []byte) []uint64 {
	h1, h2 := hashPair(f.hash, elem)
	idx := make([]uint64, f.hashCount)
	for i := range idx {
		idx[i] = (h1 + uint64(i)*h2) % f.bits.length
	}
	return idx
}

// BitLength returns m, the number of bits in the filter.
func (f *Filter) BitLength() uint64 { return f.bits.length }

// HashCount returns k, the number of bit positions per element.
func (f *Filter) HashCount() uint32 { return f.hashCount }

// ExpectedItems returns the capacity the filter was sized for, or zero for
// filters built by NewWithParameters.
func (f *Filter) ExpectedItems() uint64 { return f.expectedItems }

// TargetFPRate returns the false positive rate the filter was sized for, or
// zero for filters built by NewWithParameters.
func (f *Filter) TargetFPRate() float64 { return f.targetFPRate }

// InsertedCount counts Insert calls, duplicates included.
func (f *Filter) InsertedCount() uint64 { return f.insertedCount }

// SetBits returns the number of set bits.
func (f *Filter) SetBits() uint64 { return f.bits.Count() }

// FillRatio returns the fraction of set bits, in [0, 1].
func (f *Filter) FillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.bits.length)
}

// EstimatedFPRate estimates the current false positive probability from
// InsertedCount. It never mutates the filter.
func (f *Filter) EstimatedFPRate() float64 {
	return EstimateFPRate(f.bits.length, f.hashCount, f.insertedCount)
}

// Stats returns the filter parameters and diagnostics.
func (f *Filter) Stats() Stats {
	setBits := f.bits.Count()
	return Stats{
		BitLength:       f.bits.length,
		HashCount:       f.hashCount,
		ExpectedItems:   f.expectedItems,
		TargetFPRate:    f.targetFPRate,
		InsertedCount:   f.insertedCount,
		SetBits:         setBits,
		FillRatio:       float64(setBits) / float64(f.bits.length),
		EstimatedFPRate: f.EstimatedFPRate(),
		SizeBytes:       EncodedBytesV1(f.bits.length),
	}
}

// Equal reports whether f and other answer every Contains query identically
// and carry the same header fields. The hash primitives are not compared.
func (f *Filter) Equal(other *Filter) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.hashCount == other.hashCount &&
		f.expectedItems == other.expectedItems &&
		math.Float64bits(f.targetFPRate) == math.Float64bits(other.targetFPRate) &&
		f.insertedCount == other.insertedCount &&
		f.bits.Equal(other.bits)
}

// Clone returns a deep copy of f.
func (f *Filter) Clone() *Filter {
	c := *f
	c.bits = f.bits.clone()
	return &c
}
