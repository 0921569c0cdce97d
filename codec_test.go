package hllpp

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func denseRhoConvention(h uint64, p uint8) uint8 {
	w := h << p
	if w == 0 {
		return 64 - p + 1
	}
	return uint8(bits.LeadingZeros64(w)) + 1
}

func Test_EncodeSparse_DecodeDense_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for p := uint8(MinPrecision); p <= MaxPrecision; p++ {
		for i := 0; i < 2000; i++ {
			h := rng.Uint64()

			wantIndex := h >> (64 - p)
			wantValue := denseRhoConvention(h, p)

			reg := encodeSparse(h, p)
			gotIndex, gotValue := decodeDense(reg, p)

			require.Equal(t, uint32(wantIndex), gotIndex, "index mismatch for p=%d h=%#x", p, h)
			require.Equal(t, wantValue, gotValue, "value mismatch for p=%d h=%#x", p, h)
		}
	}
}

func Test_EncodeSparse_DecodeDense_ZeroHash(t *testing.T) {
	reg := encodeSparse(0, 14)
	index, value := decodeDense(reg, 14)
	require.Equal(t, uint32(0), index)
	require.Equal(t, uint8(64-14+1), value)
}

func Test_DenseRho_DenseIndex_MatchConvention(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		h := rng.Uint64()
		p := uint8(4 + i%13)
		require.Equal(t, denseRhoConvention(h, p), denseRho(h, p))
		require.Equal(t, uint32(h>>(64-p)), denseIndex(h, p))
	}
}

func Test_SliceBits64(t *testing.T) {
	x := uint64(0b1011_0101)
	require.Equal(t, uint64(0b1011), sliceBits64(x, 7, 4))
	require.Equal(t, uint64(0b0101), sliceBits64(x, 3, 0))
	require.Equal(t, x, sliceBits64(x, 63, 0))
}
