package hllpp

import "github.com/pkg/errors"

// Merge absorbs b into a and returns a. It is commutative and
// associative by construction, so a tree of Merge calls over a set of
// per-worker sketches produces the same result regardless of reduction
// topology — the property the all-reduce combiner in the engine package
// depends on.
//
// a and b must share the same precision; sparse registers are encoded
// relative to p, so sketches built at different precisions cannot be
// merged without first re-hashing every inserted value, which Merge
// does not do.
func Merge(a, b *Sketch) (*Sketch, error) {
	if a.p != b.p {
		return nil, errors.Wrapf(ErrPrecisionMismatch, "merge: a.p=%d b.p=%d", a.p, b.p)
	}

	if a.sparse != b.sparse {
		if a.sparse {
			a.promoteDense()
		}
		if b.sparse {
			// b is only read here, but promoteDense mutates it in
			// place; merge never needs b again afterward.
			b.promoteDense()
		}
	}

	if a.sparse {
		mergeSparse(a, b)
		return a, nil
	}

	mergeDense(a, b)
	return a, nil
}

func mergeSparse(a, b *Sketch) {
	for it := newSparseListIterator(b.sparseList); !it.Done(); {
		a.tmpSet = append(a.tmpSet, it.Next())
	}
	a.tmpSet = append(a.tmpSet, b.tmpSet...)

	a.flushSparse()
	if len(a.sparseList) > sparseListMaxBytes {
		a.promoteDense()
	}
}

func mergeDense(a, b *Sketch) {
	for i := uint32(0); i < a.m; i++ {
		if b.dense[i] > a.dense[i] {
			a.dense[i] = b.dense[i]
		}
	}
}
