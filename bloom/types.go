package bloom

import (
	"errors"
	"fmt"
)

const (
	// HeaderBytesV1 is the fixed header size for HeaderV1.
	HeaderBytesV1 = 40

	// MagicV1 identifies a version 1 encoding. Read as a little-endian u32 it
	// is 0x31424C42.
	MagicV1 = "BLB1"

	// MaxBitLength bounds the bit array at 32 GiB of packed storage.
	MaxBitLength uint64 = 1 << 38

	// MaxHashCount bounds k. ComputeParameters never exceeds about 1075
	// (k ~ log2(1/p) at the smallest positive float64).
	MaxHashCount uint32 = 4096

	// SeedH1 and SeedH2 are the hash seeds used to derive h1 and h2. They are
	// part of the format: filters built with other seeds are not
	// interchangeable even though their headers decode identically.
	SeedH1 uint32 = 0
	SeedH2 uint32 = 1
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrInvalidParameter = errors.New("bloom: invalid parameter")
	ErrIndexOutOfRange  = errors.New("bloom: index out of range")
	ErrCorruptData      = errors.New("bloom: corrupt data")
)

var (
	ErrZeroItems         = fmt.Errorf("%w: expected items must be positive", ErrInvalidParameter)
	ErrBadFPRate         = fmt.Errorf("%w: false positive rate must be in the open interval (0, 1)", ErrInvalidParameter)
	ErrZeroLength        = fmt.Errorf("%w: bit length must be positive", ErrInvalidParameter)
	ErrZeroHashCount     = fmt.Errorf("%w: hash count must be positive", ErrInvalidParameter)
	ErrBitLengthOverflow = fmt.Errorf("%w: bit length exceeds supported maximum", ErrInvalidParameter)
	ErrHashCountOverflow = fmt.Errorf("%w: hash count exceeds supported maximum", ErrInvalidParameter)

	ErrShortBuffer    = fmt.Errorf("%w: buffer shorter than header", ErrCorruptData)
	ErrBadMagic       = fmt.Errorf("%w: header magic invalid", ErrCorruptData)
	ErrBadBitLength   = fmt.Errorf("%w: header bit length invalid", ErrCorruptData)
	ErrBadHashCount   = fmt.Errorf("%w: header hash count invalid", ErrCorruptData)
	ErrLengthMismatch = fmt.Errorf("%w: bitset length does not match bit length", ErrCorruptData)
	ErrPaddingBits    = fmt.Errorf("%w: padding bits set beyond bit length", ErrCorruptData)
)

// HeaderV1 carries the fixed fields of a version 1 encoding.
type HeaderV1 struct {
	BitLength     uint64
	HashCount     uint32
	ExpectedItems uint64
	TargetFPRate  float64
	InsertedCount uint64
}

// Stats is a read-only snapshot of a filter's parameters and diagnostics.
type Stats struct {
	BitLength       uint64  `json:"bit_length" yaml:"bit_length"`
	HashCount       uint32  `json:"hash_count" yaml:"hash_count"`
	ExpectedItems   uint64  `json:"expected_items" yaml:"expected_items"`
	TargetFPRate    float64 `json:"target_fp_rate" yaml:"target_fp_rate"`
	InsertedCount   uint64  `json:"inserted_count" yaml:"inserted_count"`
	SetBits         uint64  `json:"set_bits" yaml:"set_bits"`
	FillRatio       float64 `json:"fill_ratio" yaml:"fill_ratio"`
	EstimatedFPRate float64 `json:"estimated_fp_rate" yaml:"estimated_fp_rate"`
	SizeBytes       uint64  `json:"size_bytes" yaml:"size_bytes"`
}
