package hllpp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Serialize_Sparse_RoundTrip_ByteEqual(t *testing.T) {
	s, err := New(14)
	require.NoError(t, err)

	regs := []uint32{0x01000001, 0x02000003, 0x04000005}
	s.sparseList = encodeSparseList(regs)
	s.sparseLen = len(regs)
	s.tmpSet = []uint32{0x05000007}

	first, err := s.MarshalBinary()
	require.NoError(t, err)

	decoded, err := New(14)
	require.NoError(t, err)
	require.NoError(t, decoded.UnmarshalBinary(first))

	second, err := decoded.MarshalBinary()
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, s.tmpSet, decoded.tmpSet)
	require.Equal(t, s.sparseLen, decoded.sparseLen)
}

func Test_Serialize_Dense_RoundTrip(t *testing.T) {
	s, err := New(10)
	require.NoError(t, err)
	Add(s, "x", StringHasher)
	s.promoteDense()

	data, err := s.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, shapeDense, data[0])
	require.Equal(t, int(s.m)+1, len(data))

	decoded, err := New(10)
	require.NoError(t, err)
	require.NoError(t, decoded.UnmarshalBinary(data))
	require.Equal(t, s.dense, decoded.dense)
	require.False(t, decoded.IsSparse())
}

func Test_Unmarshal_UnknownShape(t *testing.T) {
	s, err := New(10)
	require.NoError(t, err)
	require.ErrorIs(t, s.UnmarshalBinary([]byte{0xff}), ErrUnknownShape)
}

func Test_Unmarshal_Truncated(t *testing.T) {
	s, err := New(10)
	require.NoError(t, err)
	require.ErrorIs(t, s.UnmarshalBinary(nil), ErrTruncated)
	require.ErrorIs(t, s.UnmarshalBinary([]byte{shapeSparse, 0, 0, 0}), ErrTruncated)
}
