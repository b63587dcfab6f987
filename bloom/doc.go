package bloom

/*

# Bloom filter with an explicit, versioned byte layout

This package provides a single Bloom filter over arbitrary byte strings, sized
from an expected element count and a target false positive rate.

It keeps to a few rules:

- small, composable functions
- explicit byte layouts
- index arithmetic on byte slices
- no internal locking; Locked is an opt-in wrapper

## What Bloom filters are (and are not)

Bloom filters provide a *probabilistic prefilter*:

- If the filter says "definitely not present", then the element is not present.
- If the filter says "maybe present", then the element may or may not be present
  (false positives are possible).

The hash primitive is not cryptographic. An adversary choosing elements can
drive the false positive rate well above the configured target.

## Sizing

For n expected elements and target rate p:

	m = ceil(-(n * ln p) / ln(2)^2)     bits, at least 1
	k = round(m / n * ln 2)             hash derivations, at least 1

A filter cannot grow. Changing capacity means building a new filter and
re-inserting the known elements.

## Indexing and bit numbering

Each operation computes two 64-bit MurmurHash3 digests of the element,
h1 with seed SeedH1 (0) and h2 with seed SeedH2 (1), and derives k positions
by double hashing (Kirsch-Mitzenmacher):

	index_i = (h1 + i*h2) mod m,   i = 0 .. k-1

Bits are numbered LSB0: index j is bit (j mod 8) of byte (j / 8).

## Encoding, version 1

All integers are little-endian.

	+----------------------+  0
	| magic "BLB1"     u32 |
	+----------------------+  4
	| bit_length       u64 |
	+----------------------+  12
	| hash_count       u32 |
	+----------------------+  16
	| expected_items   u64 |
	+----------------------+  24
	| target_fp_rate   f64 |
	+----------------------+  32
	| inserted_count   u64 |
	+----------------------+  40
	| bitset               |  ceil(bit_length/8) bytes, padding bits zero
	+----------------------+

expected_items and target_fp_rate are informational. Decoding never returns a
partially constructed filter: any malformed input fails with an error matching
ErrCorruptData.

## API versioning

Encoding helpers are suffixed with a format version (HeaderV1, EncodeHeaderV1,
DecodeHeaderV1). A future incompatible layout, hash scheme or bit order is
introduced as V2 alongside, without silently breaking persisted filters.

*/
