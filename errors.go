package hllpp

import "github.com/pkg/errors"

// ErrTruncated is returned by UnmarshalBinary when the supplied byte
// slice is shorter than the shape tag and its length-prefixed payload
// claim it should be.
var ErrTruncated = errors.New("hllpp: truncated sketch payload")

// ErrUnknownShape is returned by UnmarshalBinary when the leading shape
// tag byte is neither sparse nor dense.
var ErrUnknownShape = errors.New("hllpp: unknown sketch shape tag")

// ErrPrecisionMismatch is returned by Merge when the two sketches being
// combined disagree on the precision p.
var ErrPrecisionMismatch = errors.New("hllpp: precision mismatch")
