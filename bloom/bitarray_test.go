package bloom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitArraySetGet(t *testing.T) {
	a, err := NewBitArray(20)
	require.NoError(t, err)
	require.Equal(t, uint64(20), a.Len())
	require.Equal(t, uint64(0), a.Count())

	for _, j := range []uint64{0, 7, 8, 19} {
		require.NoError(t, a.Set(j))
		ok, err := a.Get(j)
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := a.Get(1)
	require.NoError(t, err)
	require.False(t, ok)

	// Set is idempotent.
	require.NoError(t, a.Set(7))
	require.Equal(t, uint64(4), a.Count())
}

func TestBitArrayBounds(t *testing.T) {
	a, err := NewBitArray(9)
	require.NoError(t, err)

	require.ErrorIs(t, a.Set(9), ErrIndexOutOfRange)
	_, err = a.Get(9)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = a.Get(^uint64(0))
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestNewBitArrayRejectsZero(t *testing.T) {
	_, err := NewBitArray(0)
	require.ErrorIs(t, err, ErrZeroLength)
	require.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewBitArray(MaxBitLength + 1)
	require.ErrorIs(t, err, ErrBitLengthOverflow)
}

func TestBitArrayLayoutLSB0(t *testing.T) {
	a, err := NewBitArray(12)
	require.NoError(t, err)
	require.NoError(t, a.Set(0))
	require.NoError(t, a.Set(3))
	require.NoError(t, a.Set(9))
	require.NoError(t, a.Set(11))

	// Bit 0 of byte 0 is index 0; index 9 is bit 1 of byte 1.
	require.Equal(t, []byte{0b0000_1001, 0b0000_1010}, a.Bytes())

	// Bytes returns a copy.
	b := a.Bytes()
	b[0] = 0xFF
	ok, err := a.Get(1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBitArrayFromBytes(t *testing.T) {
	a, err := BitArrayFromBytes([]byte{0b0000_1001, 0b0000_1010}, 12)
	require.NoError(t, err)
	for j, want := range map[uint64]bool{0: true, 1: false, 3: true, 9: true, 10: false, 11: true} {
		got, err := a.Get(j)
		require.NoError(t, err)
		require.Equal(t, want, got, "index %d", j)
	}

	src, err := NewBitArray(77)
	require.NoError(t, err)
	for j := uint64(0); j < 77; j += 5 {
		require.NoError(t, src.Set(j))
	}
	back, err := BitArrayFromBytes(src.Bytes(), src.Len())
	require.NoError(t, err)
	require.True(t, src.Equal(back))
}

func TestBitArrayFromBytesRejects(t *testing.T) {
	_, err := BitArrayFromBytes([]byte{0, 0}, 17)
	require.ErrorIs(t, err, ErrLengthMismatch)
	require.ErrorIs(t, err, ErrCorruptData)

	_, err = BitArrayFromBytes([]byte{0, 0, 0}, 16)
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = BitArrayFromBytes(nil, 0)
	require.ErrorIs(t, err, ErrCorruptData)

	// Length 12 leaves the high nibble of byte 1 as padding.
	_, err = BitArrayFromBytes([]byte{0, 0x10}, 12)
	require.ErrorIs(t, err, ErrPaddingBits)
	_, err = BitArrayFromBytes([]byte{0, 0x0F}, 12)
	require.NoError(t, err)
}
