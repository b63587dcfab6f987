package bloom

import (
	"errors"
	"fmt"
	"io"
)

// MarshalBinary returns the V1 encoding of f: the header followed by the
// packed bit array.
func (f *Filter) MarshalBinary() ([]byte, error) {
	buf := make([]byte, EncodedBytesV1(f.bits.length))
	if err := EncodeHeaderV1(buf, f.headerV1()); err != nil {
		return nil, err
	}
	copy(buf[HeaderBytesV1:], f.bits.bits)
	return buf, nil
}

// WriteTo writes the V1 encoding of f to w.
func (f *Filter) WriteTo(w io.Writer) (int64, error) {
	var hdr [HeaderBytesV1]byte
	if err := EncodeHeaderV1(hdr[:], f.headerV1()); err != nil {
		return 0, err
	}
	n, err := w.Write(hdr[:])
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(f.bits.bits)
	return int64(n + m), err
}

// Decode parses a V1 encoding. buf must hold exactly one encoded filter. Any
// failure matches ErrCorruptData and no filter is returned.
func Decode(buf []byte, opts ...Option) (*Filter, error) {
	h, err := DecodeHeaderV1(buf)
	if err != nil {
		return nil, err
	}
	bits, err := BitArrayFromBytes(buf[HeaderBytesV1:], h.BitLength)
	if err != nil {
		return nil, err
	}
	return fromHeaderV1(h, bits, opts), nil
}

// ReadFilter reads one V1 encoding from r. Reads stop at the end of the
// bitset, so r may carry further data.
func ReadFilter(r io.Reader, opts ...Option) (*Filter, error) {
	var hdr [HeaderBytesV1]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, readErr(err, ErrShortBuffer)
	}
	h, err := DecodeHeaderV1(hdr[:])
	if err != nil {
		return nil, err
	}

	// Grow with the data actually present rather than trusting the header
	// for one large allocation.
	want := BitsetBytes(h.BitLength)
	data, err := io.ReadAll(io.LimitReader(r, int64(want)))
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) != want {
		return nil, fmt.Errorf("%w: read %d of %d bitset bytes", ErrLengthMismatch, len(data), want)
	}
	bits, err := BitArrayFromBytes(data, h.BitLength)
	if err != nil {
		return nil, err
	}
	return fromHeaderV1(h, bits, opts), nil
}

// UnmarshalBinary replaces f with the filter decoded from data, keeping f's
// hash primitive. f is unchanged on error.
func (f *Filter) UnmarshalBinary(data []byte) error {
	var opts []Option
	if f.hash != nil {
		opts = append(opts, WithHash(f.hash))
	}
	decoded, err := Decode(data, opts...)
	if err != nil {
		return err
	}
	*f = *decoded
	return nil
}

func fromHeaderV1(h HeaderV1, bits *BitArray, opts []Option) *Filter {
	o := newOptions(opts)
	return &Filter{
		bits:          bits,
		hashCount:     h.HashCount,
		expectedItems: h.ExpectedItems,
		targetFPRate:  h.TargetFPRate,
		insertedCount: h.InsertedCount,
		hash:          o.Hash,
	}
}

// readErr maps a truncated stream onto the corrupt data kind. Other reader
// failures pass through.
func readErr(err error, truncated error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", truncated, err)
	}
	return err
}
