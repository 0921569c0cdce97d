// Package hllpp implements a HyperLogLog++ cardinality estimator whose
// register sketch is designed to be carried across a data-parallel
// all-reduce: it starts in a compact sparse mode and promotes itself to
// a fixed-size dense mode only once the cardinality of the stream it has
// seen actually warrants it.
//
// A Sketch is not safe for concurrent use. Each worker in a data-parallel
// job owns exactly one Sketch; the engine package in this module merges
// per-worker sketches with Merge, which is commutative and associative
// and therefore usable as an all-reduce combiner regardless of reduction
// topology.
package hllpp

import "fmt"

const (
	// MinPrecision is the smallest allowed dense precision p.
	MinPrecision = 4
	// MaxPrecision is the largest allowed dense precision p.
	MaxPrecision = 16

	// sparsePrecision (p') is the fixed precision used for sparse-mode
	// registers, uniformly, regardless of the sketch's dense precision.
	// Sparse indices are 25 bits wide.
	sparsePrecision = 25
	// mPrime is 2^sparsePrecision, the size of the sparse index space.
	mPrime = uint32(1) << sparsePrecision

	// sparseListMaxBytes (S_max) bounds the encoded sparse-list byte
	// length before promotion to dense is triggered.
	sparseListMaxBytes = 200
	// tmpSetMaxEntries (T_max) bounds the number of buffered,
	// not-yet-flushed sparse registers before a flush is forced.
	tmpSetMaxEntries = 40
)

// validatePrecision reports whether p is a legal dense precision. It is
// a programming error to construct a Sketch with an out-of-range
// precision; callers that accept p from untrusted input should check
// this themselves and surface a user-facing error instead of calling New.
func validatePrecision(p uint8) error {
	if p < MinPrecision || p > MaxPrecision {
		return fmt.Errorf("hllpp: precision p must be in [%d, %d], got %d", MinPrecision, MaxPrecision, p)
	}
	return nil
}
