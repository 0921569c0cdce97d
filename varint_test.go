package hllpp

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_EncodeSparseList_DecodeSequenceEqual(t *testing.T) {
	lists := [][]uint32{
		{},
		{0},
		{1, 2, 3},
		{0, 1000, 1000000, 1000000000},
		{5, 5 + 127, 5 + 128, 5 + 16384},
	}

	for _, l := range lists {
		sorted := append([]uint32(nil), l...)
		sort.Sort(uint32Slice(sorted))

		encoded := encodeSparseList(sorted)

		var got []uint32
		for it := newSparseListIterator(encoded); !it.Done(); {
			got = append(got, it.Next())
		}

		require.Equal(t, sorted, got)
	}
}

func Test_SparseListIterator_Peek_DoesNotAdvance(t *testing.T) {
	encoded := encodeSparseList([]uint32{10, 20, 30})
	it := newSparseListIterator(encoded)

	require.Equal(t, uint32(10), it.Peek())
	require.Equal(t, uint32(10), it.Peek())
	require.Equal(t, uint32(10), it.Next())
	require.Equal(t, uint32(20), it.Next())
	require.Equal(t, uint32(30), it.Next())
	require.True(t, it.Done())
}

func Test_PutUvarint_ReadUvarint_RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 16383, 16384, 1<<32 - 1}
	for _, v := range values {
		buf := putUvarint(nil, v)
		got, n := readUvarint(buf)
		require.Equal(t, len(buf), n)
		require.Equal(t, v, got)
	}
}
