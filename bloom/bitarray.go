package bloom

import (
	"bytes"
	"fmt"
	"math/bits"
)

// BitArray is a fixed length sequence of bits packed LSB0: logical index j
// lives in byte j/8 at bit j%8, so bit 0 of byte 0 is index 0. Bits of the
// final byte beyond the logical length are always zero.
type BitArray struct {
	bits   []byte
	length uint64
}

// NewBitArray allocates length cleared bits.
func NewBitArray(length uint64) (*BitArray, error) {
	if err := checkBitLength(length); err != nil {
		return nil, err
	}
	return &BitArray{
		bits:   make([]byte, BitsetBytes(length)),
		length: length,
	}, nil
}

// BitArrayFromBytes is the inverse of Bytes. data is copied.
func BitArrayFromBytes(data []byte, length uint64) (*BitArray, error) {
	if length == 0 || length > MaxBitLength {
		return nil, ErrBadBitLength
	}
	if uint64(len(data)) != BitsetBytes(length) {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrLengthMismatch, len(data), BitsetBytes(length))
	}
	if tail := length % 8; tail != 0 {
		if data[len(data)-1]&^byte(1<<tail-1) != 0 {
			return nil, ErrPaddingBits
		}
	}
	return &BitArray{
		bits:   bytes.Clone(data),
		length: length,
	}, nil
}

// Len returns the logical number of bits.
func (a *BitArray) Len() uint64 {
	return a.length
}

// Set sets the bit at index. Setting an already set bit is a no-op.
func (a *BitArray) Set(index uint64) error {
	if index >= a.length {
		return fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, index, a.length)
	}
	a.set(index)
	return nil
}

// Get returns the bit at index.
func (a *BitArray) Get(index uint64) (bool, error) {
	if index >= a.length {
		return false, fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, index, a.length)
	}
	return a.get(index), nil
}

// Count returns the number of set bits.
func (a *BitArray) Count() uint64 {
	var n int
	for _, b := range a.bits {
		n += bits.OnesCount8(b)
	}
	return uint64(n)
}

// Bytes returns a copy of the packed representation, ceil(Len()/8) bytes.
func (a *BitArray) Bytes() []byte {
	return bytes.Clone(a.bits)
}

// Equal reports whether a and other have the same length and bit pattern.
func (a *BitArray) Equal(other *BitArray) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.length == other.length && bytes.Equal(a.bits, other.bits)
}

func (a *BitArray) clone() *BitArray {
	return &BitArray{bits: bytes.Clone(a.bits), length: a.length}
}

// set and get skip the bounds check. Callers reduce indices modulo length.
func (a *BitArray) set(j uint64) {
	a.bits[j>>3] |= 1 << (j & 7)
}

func (a *BitArray) get(j uint64) bool {
	return a.bits[j>>3]&(1<<(j&7)) != 0
}
