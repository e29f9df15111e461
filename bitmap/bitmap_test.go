package bitmap

import (
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"math/bits"
	"math/rand"
	"testing"
)

func TestBitmapRoundTrip(t *testing.T) {
	data := Encode(16, 3, 35, 63)
	population, positions := Decode(data)
	require.Equal(t, uint64(3), population)
	if diff := cmp.Diff([]uint64{3, 35, 63}, positions); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestBitmapLittleEndian(t *testing.T) {
	// byte 1 of word 0 holds bits 8..15, byte 0 of word 1 holds bits 32..39
	data := []byte{0x00, 0x01, 0x00, 0x00, 0x80, 0x00, 0x00, 0x80}
	population, positions := Decode(data)
	require.Equal(t, uint64(3), population)
	require.Equal(t, []uint64{8, 39, 63}, positions)
}

func TestBitmapEmpty(t *testing.T) {
	population, positions := Decode(nil)
	require.Equal(t, uint64(0), population)
	require.Empty(t, positions)

	population, positions = Decode(make([]byte, 512))
	require.Equal(t, uint64(0), population)
	require.Empty(t, positions)
}

func TestBitmapTrailingBytesIgnored(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00, 0xff, 0xff}
	population, positions := Decode(data)
	require.Equal(t, uint64(1), population)
	require.Equal(t, []uint64{0}, positions)
}

func TestBitmapFull(t *testing.T) {
	data := []byte{0xff, 0xff, 0xff, 0xff}
	population, positions := Decode(data)
	require.Equal(t, uint64(32), population)
	require.Len(t, positions, 32)
	for i, pos := range positions {
		require.Equal(t, uint64(i), pos)
	}
}

func TestBitmapRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 0; n < 50; n++ {
		data := make([]byte, 4*r.Intn(64))
		r.Read(data)

		var expected uint64
		for _, b := range data {
			expected += uint64(bits.OnesCount8(b))
		}

		population, positions := Decode(data)
		require.Equal(t, expected, population)
		require.Equal(t, expected, uint64(len(positions)))
		require.Equal(t, expected, Count(data))
		for i := 1; i < len(positions); i++ {
			require.Less(t, positions[i-1], positions[i])
		}
		for _, pos := range positions {
			require.NotZero(t, data[pos/8]&(1<<(pos%8)))
		}
	}
}

func TestBitmapEncodeDropsOutOfRange(t *testing.T) {
	data := Encode(4, 1, 32, 100)
	require.Equal(t, []byte{0x02, 0x00, 0x00, 0x00}, data)
}
