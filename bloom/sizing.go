package bloom

import "math"

const ln2Squared = math.Ln2 * math.Ln2

// ComputeParameters returns the bit length and hash count for a filter
// expected to hold expectedItems elements at targetFPRate:
//
//	bitLength = ceil(-(n * ln(p)) / ln(2)^2)
//	hashCount = round(bitLength / n * ln(2))
//
// Both are clamped to a minimum of 1. A bit length above MaxBitLength is
// reported as ErrBitLengthOverflow.
func ComputeParameters(expectedItems uint64, targetFPRate float64) (uint64, uint32, error) {
	if expectedItems == 0 {
		return 0, 0, ErrZeroItems
	}
	// The negated form also rejects NaN.
	if !(targetFPRate > 0 && targetFPRate < 1) {
		return 0, 0, ErrBadFPRate
	}

	n := float64(expectedItems)
	m := math.Ceil(-(n * math.Log(targetFPRate)) / ln2Squared)
	if math.IsInf(m, 0) || math.IsNaN(m) || m > float64(MaxBitLength) {
		return 0, 0, ErrBitLengthOverflow
	}
	bitLength := uint64(m)
	if bitLength < 1 {
		bitLength = 1
	}

	k := math.Round(float64(bitLength) / n * math.Ln2)
	if k > float64(MaxHashCount) {
		return 0, 0, ErrHashCountOverflow
	}
	hashCount := uint32(k)
	if hashCount < 1 {
		hashCount = 1
	}
	return bitLength, hashCount, nil
}

// EstimateFPRate returns the expected false positive probability after
// inserted distinct elements:
//
//	(1 - e^(-k*n/m))^k
func EstimateFPRate(bitLength uint64, hashCount uint32, inserted uint64) float64 {
	if bitLength == 0 || inserted == 0 {
		return 0
	}
	k := float64(hashCount)
	exp := math.Exp(-k * float64(inserted) / float64(bitLength))
	return math.Pow(1-exp, k)
}

// BitsetBytes returns ceil(bitLength/8).
func BitsetBytes(bitLength uint64) uint64 {
	return bitLength/8 + min(bitLength%8, 1)
}

// EncodedBytesV1 returns the size of a version 1 encoding for bitLength:
//
//	HeaderBytesV1 + ceil(bitLength/8)
func EncodedBytesV1(bitLength uint64) uint64 {
	return HeaderBytesV1 + BitsetBytes(bitLength)
}

func checkBitLength(bitLength uint64) error {
	if bitLength == 0 {
		return ErrZeroLength
	}
	if bitLength > MaxBitLength {
		return ErrBitLengthOverflow
	}
	return nil
}

func checkHashCount(hashCount uint32) error {
	if hashCount == 0 {
		return ErrZeroHashCount
	}
	if hashCount > MaxHashCount {
		return ErrHashCountOverflow
	}
	return nil
}
