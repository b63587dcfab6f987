package bloom

// DecodeHeaderV1 decodes and validates a V1 header from the start of buf.
// Trailing bytes are ignored.
func DecodeHeaderV1(buf []byte) (HeaderV1, error) {
	if len(buf) < HeaderBytesV1 {
		return HeaderV1{}, ErrShortBuffer
	}
	if string(buf[0:4]) != MagicV1 {
		return HeaderV1{}, ErrBadMagic
	}

	h := HeaderV1{
		BitLength:     readU64LE(buf[4:12]),
		HashCount:     readU32LE(buf[12:16]),
		ExpectedItems: readU64LE(buf[16:24]),
		TargetFPRate:  readF64LE(buf[24:32]),
		InsertedCount: readU64LE(buf[32:40]),
	}

	if h.BitLength == 0 || h.BitLength > MaxBitLength {
		return HeaderV1{}, ErrBadBitLength
	}
	if h.HashCount == 0 || h.HashCount > MaxHashCount {
		return HeaderV1{}, ErrBadHashCount
	}
	return h, nil
}

// EncodeHeaderV1 writes a V1 header into the first HeaderBytesV1 bytes of buf.
func EncodeHeaderV1(buf []byte, h HeaderV1) error {
	if len(buf) < HeaderBytesV1 {
		return ErrShortBuffer
	}
	if err := checkBitLength(h.BitLength); err != nil {
		return err
	}
	if err := checkHashCount(h.HashCount); err != nil {
		return err
	}

	copy(buf[0:4], MagicV1)
	writeU64LE(buf[4:12], h.BitLength)
	writeU32LE(buf[12:16], h.HashCount)
	writeU64LE(buf[16:24], h.ExpectedItems)
	writeF64LE(buf[24:32], h.TargetFPRate)
	writeU64LE(buf[32:40], h.InsertedCount)
	return nil
}

func (f *Filter) headerV1() HeaderV1 {
	return HeaderV1{
		BitLength:     f.bits.length,
		HashCount:     f.hashCount,
		ExpectedItems: f.expectedItems,
		TargetFPRate:  f.targetFPRate,
		InsertedCount: f.insertedCount,
	}
}
