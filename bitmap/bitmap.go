// Package bitmap decodes on-disk allocation bitmaps.
//
// A bitmap is a sequence of 32-bit little-endian words. Bit b of word w
// (b = 0 is the least significant bit) is global position w*32 + b.
package bitmap

import (
	"encoding/binary"
	"math/bits"
)

const (
	WordBytes = 4
	WordBits  = 32
)

// Decode returns the number of set bits in data and their positions in
// ascending order. Trailing bytes that do not fill a whole word are
// ignored.
func Decode(data []byte) (uint64, []uint64) {
	var population uint64
	positions := []uint64{}
	words := len(data) / WordBytes
	for i := 0; i < words; i++ {
		w := binary.LittleEndian.Uint32(data[i*WordBytes:])
		population += uint64(bits.OnesCount32(w))
		for w != 0 {
			b := bits.TrailingZeros32(w)
			positions = append(positions, uint64(i)*WordBits+uint64(b))
			w &= w - 1
		}
	}
	return population, positions
}

// Count returns the number of set bits in data.
func Count(data []byte) uint64 {
	population, _ := Decode(data)
	return population
}

// Encode returns a bitmap of size bytes with the given positions set.
// Positions beyond the bitmap are dropped.
func Encode(size int, positions ...uint64) []byte {
	data := make([]byte, size)
	for _, pos := range positions {
		word := pos / WordBits
		if int(word) >= size/WordBytes {
			continue
		}
		w := binary.LittleEndian.Uint32(data[word*WordBytes:])
		w |= 1 << (pos % WordBits)
		binary.LittleEndian.PutUint32(data[word*WordBytes:], w)
	}
	return data
}
