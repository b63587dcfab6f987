package bloom_test

import (
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestrie/go-bloombox/bloom"
)

const (
	smallN     = uint64(1000)
	standardFP = 0.01
	fpTestN    = uint64(10_000)
	fpTrials   = 100_000
	fpMargin   = 2.0 // Allow double the configured FP.
)

func uint64ToBytes(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)

	return buf
}

// fixedHash returns h1 for SeedH1 and h2 for any other seed.
func fixedHash(h1, h2 uint64) bloom.Hash64 {
	return func(_ []byte, seed uint32) uint64 {
		if seed == bloom.SeedH1 {
			return h1
		}

		return h2
	}
}

func TestNew_Boundaries(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(1, 0.5)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, f.BitLength(), uint64(1))
	assert.GreaterOrEqual(t, f.HashCount(), uint32(1))

	for _, tc := range []struct {
		name string
		n    uint64
		fp   float64
	}{
		{"zero_items", 0, 0.01},
		{"zero_fp", 100, 0.0},
		{"fp_one", 100, 1.0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f, err := bloom.New(tc.n, tc.fp)
			require.ErrorIs(t, err, bloom.ErrInvalidParameter)
			assert.Nil(t, f)
		})
	}
}

func TestNew_RecordsSizingInputs(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(100, standardFP)
	require.NoError(t, err)
	assert.Equal(t, uint64(959), f.BitLength())
	assert.Equal(t, uint32(7), f.HashCount())
	assert.Equal(t, uint64(100), f.ExpectedItems())
	assert.InDelta(t, standardFP, f.TargetFPRate(), 0)
	assert.Zero(t, f.InsertedCount())
	assert.Zero(t, f.SetBits())
}

func TestNewWithParameters(t *testing.T) {
	t.Parallel()

	f, err := bloom.NewWithParameters(100, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), f.BitLength())
	assert.Equal(t, uint32(5), f.HashCount())
	assert.Zero(t, f.ExpectedItems())

	_, err = bloom.NewWithParameters(0, 5)
	require.ErrorIs(t, err, bloom.ErrZeroLength)

	_, err = bloom.NewWithParameters(100, 0)
	require.ErrorIs(t, err, bloom.ErrZeroHashCount)
	require.ErrorIs(t, err, bloom.ErrInvalidParameter)

	f, err = bloom.NewWithParameters(64, bloom.MaxHashCount)
	require.NoError(t, err)
	assert.Len(t, f.Indexes([]byte("x")), int(bloom.MaxHashCount))

	_, err = bloom.NewWithParameters(64, bloom.MaxHashCount+1)
	require.ErrorIs(t, err, bloom.ErrHashCountOverflow)
	require.ErrorIs(t, err, bloom.ErrInvalidParameter)
}

func TestInsertContains_Scenario(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(100, standardFP)
	require.NoError(t, err)

	assert.False(t, f.Contains([]byte("item")), "empty filter reports absent")

	f.Insert([]byte("item"))
	assert.True(t, f.Contains([]byte("item")))
	assert.False(t, f.Contains([]byte("not-inserted-xyz")))
	assert.Equal(t, uint64(1), f.InsertedCount())
}

func TestInsert_EmptyAndNilElements(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(10, standardFP)
	require.NoError(t, err)

	f.Insert(nil)
	assert.True(t, f.Contains([]byte{}))
	assert.True(t, f.Contains(nil))
}

func TestInsertContains_NoFalseNegatives(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(smallN, standardFP)
	require.NoError(t, err)

	for i := range smallN {
		f.Insert(uint64ToBytes(i))

		// Earlier elements stay present however many follow.
		require.True(t, f.Contains(uint64ToBytes(i/2)))
	}

	for i := range smallN {
		require.True(t, f.Contains(uint64ToBytes(i)), "element %d", i)
	}

	assert.Equal(t, smallN, f.InsertedCount())
}

func TestContains_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(fpTestN, standardFP)
	require.NoError(t, err)

	for i := range fpTestN {
		f.Insert(uint64ToBytes(i))
	}

	falsePositives := 0

	for i := range uint64(fpTrials) {
		if f.Contains(uint64ToBytes(fpTestN + i)) {
			falsePositives++
		}
	}

	observed := float64(falsePositives) / float64(fpTrials)
	assert.LessOrEqual(t, observed, standardFP*fpMargin, "observed FP rate %.4f", observed)
	assert.InDelta(t, standardFP, f.EstimatedFPRate(), 0.002)
}

func TestIndexes_DoubleHashing(t *testing.T) {
	t.Parallel()

	f, err := bloom.NewWithParameters(16, 4, bloom.WithHash(fixedHash(5, 3)))
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 8, 11, 14}, f.Indexes([]byte("x")))

	f.Insert([]byte("x"))
	assert.Equal(t, uint64(4), f.SetBits())
	assert.Equal(t, []byte{0x20, 0x49}, mustBitset(t, f))
}

func TestIndexes_WrappingArithmetic(t *testing.T) {
	t.Parallel()

	// h1 + i*h2 wraps modulo 2^64 before reduction modulo the bit length.
	f, err := bloom.NewWithParameters(10, 3, bloom.WithHash(fixedHash(math.MaxUint64, 2)))
	require.NoError(t, err)
	assert.Equal(t, []uint64{5, 1, 3}, f.Indexes(nil))
}

func TestIndexes_UsesDistinctSeeds(t *testing.T) {
	t.Parallel()

	var seeds []uint32

	hash := func(data []byte, seed uint32) uint64 {
		seeds = append(seeds, seed)

		return bloom.Murmur3(data, seed)
	}

	f, err := bloom.NewWithParameters(1024, 7, bloom.WithHash(hash))
	require.NoError(t, err)

	f.Insert([]byte("a"))
	assert.Equal(t, []uint32{bloom.SeedH1, bloom.SeedH2}, seeds)
}

func TestTestAndInsert(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(smallN, standardFP)
	require.NoError(t, err)

	assert.False(t, f.TestAndInsert([]byte("first")))
	assert.True(t, f.TestAndInsert([]byte("first")))
	assert.True(t, f.Contains([]byte("first")))
	assert.Equal(t, uint64(2), f.InsertedCount())
}

func TestInsertAll_ContainsAll(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(smallN, standardFP)
	require.NoError(t, err)

	items := make([][]byte, 50)
	for i := range items {
		items[i] = []byte(fmt.Sprintf("bulk-%d", i))
	}

	f.InsertAll(items)
	assert.Equal(t, uint64(len(items)), f.InsertedCount())

	for i, ok := range f.ContainsAll(items) {
		assert.True(t, ok, "item %d", i)
	}

	assert.Nil(t, f.ContainsAll(nil))
}

func TestStrings(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(10, standardFP)
	require.NoError(t, err)

	f.InsertString("hello")
	assert.True(t, f.ContainsString("hello"))
	assert.True(t, f.Contains([]byte("hello")))
}

func TestStats(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(100, standardFP)
	require.NoError(t, err)

	for i := range uint64(100) {
		f.Insert(uint64ToBytes(i))
	}

	st := f.Stats()
	assert.Equal(t, uint64(959), st.BitLength)
	assert.Equal(t, uint32(7), st.HashCount)
	assert.Equal(t, uint64(100), st.ExpectedItems)
	assert.Equal(t, uint64(100), st.InsertedCount)
	assert.Equal(t, f.SetBits(), st.SetBits)
	assert.LessOrEqual(t, st.SetBits, uint64(700))
	assert.InDelta(t, f.FillRatio(), st.FillRatio, 0)
	assert.InDelta(t, float64(st.SetBits)/959, st.FillRatio, 1e-12)
	assert.InDelta(t, f.EstimatedFPRate(), st.EstimatedFPRate, 0)
	assert.Equal(t, uint64(bloom.HeaderBytesV1+120), st.SizeBytes)
}

func TestClone_IsIndependent(t *testing.T) {
	t.Parallel()

	f, err := bloom.New(100, standardFP)
	require.NoError(t, err)
	f.Insert([]byte("a"))

	c := f.Clone()
	require.True(t, f.Equal(c))

	c.Insert([]byte("b"))
	assert.False(t, f.Equal(c))
	assert.False(t, f.Contains([]byte("b")))
	assert.Equal(t, uint64(1), f.InsertedCount())
}

func mustBitset(t *testing.T, f *bloom.Filter) []byte {
	t.Helper()

	buf, err := f.MarshalBinary()
	require.NoError(t, err)

	return buf[bloom.HeaderBytesV1:]
}
