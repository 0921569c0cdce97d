package hllpp

import "sort"

// Sketch is the dual-mode register container. It starts in sparse mode
// (a delta-encoded varint list plus an unsorted insertion buffer, the
// "tmp set") and promotes itself to dense mode (a flat byte array, one
// leading-zero count per register) once the sparse list grows past
// S_max bytes; crossing T_max only forces the tmp set to be flushed into
// the sparse list. A Sketch is not safe for concurrent use.
type Sketch struct {
	p uint8
	m uint32

	sparse     bool
	sparseList []byte
	sparseLen  int
	tmpSet     []uint32

	dense []byte
}

// New returns an empty sparse-mode Sketch at dense precision p.
func New(p uint8) (*Sketch, error) {
	if err := validatePrecision(p); err != nil {
		return nil, err
	}
	return &Sketch{
		p:      p,
		m:      uint32(1) << p,
		sparse: true,
	}, nil
}

// Precision reports the sketch's dense precision p.
func (s *Sketch) Precision() uint8 { return s.p }

// IsSparse reports whether the sketch is still in sparse mode.
func (s *Sketch) IsSparse() bool { return s.sparse }

// Size returns m, the number of dense registers. It panics in sparse
// mode, where the register count is not yet fixed; callers must check
// IsSparse first.
func (s *Sketch) Size() uint32 {
	if s.sparse {
		panic("hllpp: Size is undefined for a sparse-mode sketch")
	}
	return s.m
}

// InsertHash absorbs one already-hashed value into the sketch. Add is
// the typed entry point most callers should use instead.
func (s *Sketch) InsertHash(hash uint64) {
	if s.sparse {
		s.insertSparse(hash)
		return
	}
	s.insertDense(hash)
}

func (s *Sketch) insertDense(hash uint64) {
	i := denseIndex(hash, s.p)
	v := denseRho(hash, s.p)
	if v > s.dense[i] {
		s.dense[i] = v
	}
}

func (s *Sketch) insertSparse(hash uint64) {
	s.tmpSet = append(s.tmpSet, encodeSparse(hash, s.p))
	if len(s.tmpSet) <= tmpSetMaxEntries {
		return
	}
	s.flushSparse()
	if len(s.sparseList) > sparseListMaxBytes {
		s.promoteDense()
	}
}

// flushSparse merges the buffered tmp set into the sparse list and
// clears the tmp set: the tmp set is sorted ascending by raw 32-bit
// register value and walked in lockstep against the existing (already
// sorted) sparse-list stream, in the same register-value order
// encodeSparseList requires for its delta encoding. Entries that decode
// to the same 25-bit index are then resolved by keeping whichever
// carries the larger dense value, so the sparse list never holds more
// than one register per index.
func (s *Sketch) flushSparse() {
	if len(s.tmpSet) == 0 {
		return
	}
	sort.Sort(uint32Slice(s.tmpSet))

	merged := make([]uint32, 0, s.sparseLen+len(s.tmpSet))
	it := newSparseListIterator(s.sparseList)
	ti := 0

	hasIt := !it.Done()
	var itReg uint32
	if hasIt {
		itReg = it.Peek()
	}

	for hasIt || ti < len(s.tmpSet) {
		switch {
		case !hasIt:
			merged = appendSparse(merged, s.tmpSet[ti])
			ti++
		case ti >= len(s.tmpSet):
			merged = appendSparse(merged, it.Next())
			hasIt = !it.Done()
			if hasIt {
				itReg = it.Peek()
			}
		default:
			tReg := s.tmpSet[ti]
			switch {
			case itReg == tReg:
				merged = appendSparse(merged, it.Next())
				ti++
				hasIt = !it.Done()
				if hasIt {
					itReg = it.Peek()
				}
			case itReg < tReg:
				merged = appendSparse(merged, it.Next())
				hasIt = !it.Done()
				if hasIt {
					itReg = it.Peek()
				}
			default:
				merged = appendSparse(merged, tReg)
				ti++
			}
		}
	}

	merged = dedupeSparse(merged, s.p)

	s.sparseList = encodeSparseList(merged)
	s.sparseLen = len(merged)
	s.tmpSet = s.tmpSet[:0]
}

// appendSparse appends reg to the in-progress merged list, which is
// sorted ascending by raw register value by construction of the
// caller's merge walk.
func appendSparse(merged []uint32, reg uint32) []uint32 {
	return append(merged, reg)
}

// sparseIndex25 returns the full 25-bit sparse index i packed into reg.
// Both register forms place i at bits [31:7], so this is tag-independent.
func sparseIndex25(reg uint32) uint32 {
	return reg >> 7
}

// dedupeSparse collapses runs of entries that share the same 25-bit
// sparse index, keeping the entry whose decoded dense value at
// precision p is larger (sparse-list invariant: at most one
// register survives per index, carrying the max value). The input is
// sorted by raw register value; since the index occupies the top 25
// bits of every register, that order is also index order, and entries
// sharing an index are adjacent.
func dedupeSparse(regs []uint32, p uint8) []uint32 {
	if len(regs) == 0 {
		return regs
	}
	type entry struct {
		index uint32
		value uint8
		reg   uint32
	}
	entries := make([]entry, len(regs))
	for i, r := range regs {
		_, val := decodeDense(r, p)
		entries[i] = entry{sparseIndex25(r), val, r}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].index < entries[b].index
	})

	out := make([]uint32, 0, len(entries))
	i := 0
	for i < len(entries) {
		j := i + 1
		best := entries[i]
		for j < len(entries) && entries[j].index == best.index {
			if entries[j].value > best.value {
				best = entries[j]
			}
			j++
		}
		out = append(out, best.reg)
		i = j
	}
	sort.Sort(uint32Slice(out))
	return out
}

// promoteDense converts the sketch from sparse to dense mode: every
// sparse-list and tmp-set entry is decoded and folded into a freshly
// allocated dense array, keeping the max value per index, then the
// sparse storage is released. Promotion is a one-way transition;
// calling it again is a programming error.
func (s *Sketch) promoteDense() {
	if !s.sparse {
		panic("hllpp: promoteDense called on an already-dense sketch")
	}
	s.flushSparse()

	dense := make([]byte, s.m)
	for it := newSparseListIterator(s.sparseList); !it.Done(); {
		idx, val := decodeDense(it.Next(), s.p)
		if val > dense[idx] {
			dense[idx] = val
		}
	}

	s.dense = dense
	s.sparse = false
	s.sparseList = nil
	s.sparseLen = 0
	s.tmpSet = nil
}

// uint32Slice implements sort.Interface for a plain ascending sort by
// raw numeric value.
type uint32Slice []uint32

func (s uint32Slice) Len() int           { return len(s) }
func (s uint32Slice) Less(i, j int) bool { return s[i] < s[j] }
func (s uint32Slice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
