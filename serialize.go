package hllpp

import "encoding/binary"

const (
	shapeSparse byte = 0
	shapeDense  byte = 1
)

// MarshalBinary implements encoding.BinaryMarshaler, producing the wire
// format of a one-byte shape tag followed by either the sparse
// list and tmp set (length-prefixed) or the raw dense array. The
// compile-time precision p travels out of band; both ends of a
// transport must already agree on it.
func (s *Sketch) MarshalBinary() ([]byte, error) {
	if s.sparse {
		buf := make([]byte, 1, 1+4+len(s.sparseList)+4+4*len(s.tmpSet))
		buf[0] = shapeSparse

		buf = appendUint32(buf, uint32(len(s.sparseList)))
		buf = append(buf, s.sparseList...)

		buf = appendUint32(buf, uint32(len(s.tmpSet)))
		for _, reg := range s.tmpSet {
			buf = appendUint32LE(buf, reg)
		}
		return buf, nil
	}

	buf := make([]byte, 1+len(s.dense))
	buf[0] = shapeDense
	copy(buf[1:], s.dense)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It replaces s's
// contents with the sketch decoded from data, at s's existing
// precision p. Returns ErrUnknownShape for an unrecognized shape tag
// and ErrTruncated if data is shorter than its own length prefixes
// claim.
func (s *Sketch) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return ErrTruncated
	}

	switch data[0] {
	case shapeSparse:
		return s.unmarshalSparse(data[1:])
	case shapeDense:
		return s.unmarshalDense(data[1:])
	default:
		return ErrUnknownShape
	}
}

func (s *Sketch) unmarshalSparse(data []byte) error {
	l1, data, err := readLenPrefixed(data)
	if err != nil {
		return err
	}
	sparseList := make([]byte, len(l1))
	copy(sparseList, l1)

	l2, _, err := readLenPrefixed(data)
	if err != nil {
		return err
	}
	if len(l2)%4 != 0 {
		return ErrTruncated
	}
	tmpSet := make([]uint32, len(l2)/4)
	for i := range tmpSet {
		tmpSet[i] = binary.LittleEndian.Uint32(l2[i*4:])
	}

	s.sparse = true
	s.sparseList = sparseList
	s.tmpSet = tmpSet
	s.dense = nil
	s.sparseLen = countSparseEntries(sparseList)
	return nil
}

func (s *Sketch) unmarshalDense(data []byte) error {
	if uint32(len(data)) != s.m {
		return ErrTruncated
	}
	dense := make([]byte, len(data))
	copy(dense, data)

	s.sparse = false
	s.dense = dense
	s.sparseList = nil
	s.sparseLen = 0
	s.tmpSet = nil
	return nil
}

// readLenPrefixed reads a 4-byte big-endian length followed by that
// many bytes, returning the payload and the remainder of buf.
func readLenPrefixed(buf []byte) (payload, rest []byte, err error) {
	if len(buf) < 4 {
		return nil, nil, ErrTruncated
	}
	n := binary.BigEndian.Uint32(buf)
	buf = buf[4:]
	if uint32(len(buf)) < n {
		return nil, nil, ErrTruncated
	}
	return buf[:n], buf[n:], nil
}

// appendUint32 appends v as a 4-byte big-endian length prefix (L1/L2).
func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// appendUint32LE appends v as a 4-byte little-endian sparse register,
// matching unmarshalSparse's binary.LittleEndian.Uint32 read of the tmp
// set and §6's "4-byte little-endian sparse registers" wire format.
func appendUint32LE(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// countSparseEntries counts the registers encoded in a varint-delta
// sparse-list payload, needed after deserialization so Estimate's
// sparse path does not have to re-walk the list to learn its length.
func countSparseEntries(sparseList []byte) int {
	n := 0
	for it := newSparseListIterator(sparseList); !it.Done(); {
		it.Next()
		n++
	}
	return n
}
