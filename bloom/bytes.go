package bloom

import (
	"encoding/binary"
	"math"
)

func readU32LE(b []byte) uint32     { return binary.LittleEndian.Uint32(b) }
func readU64LE(b []byte) uint64     { return binary.LittleEndian.Uint64(b) }
func readF64LE(b []byte) float64    { return math.Float64frombits(readU64LE(b)) }
func writeU32LE(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func writeU64LE(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func writeF64LE(b []byte, v float64) {
	writeU64LE(b, math.Float64bits(v))
}
