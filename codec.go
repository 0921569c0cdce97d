package hllpp

import "math/bits"

// This file implements the bit codec: encoding a 64-bit hash into a
// single 32-bit sparse register at sparse precision p' = 25, and
// decoding a sparse register back to the (dense index, value) pair that
// a dense-mode insert at precision p would have produced.
//
// Both forms place the 25-bit sparse index i in the top 25 bits of the
// register (bits [31:7]); they differ only in how the bottom 7 bits are
// used:
//
//   - tag bit 0 ("dense-sufficient"): bits [6:0] are zero padding. This
//     form is chosen when i's own low (p'-p) bits already contain a set
//     bit, so the dense leading-zero count is fully determined by i —
//     no residual needs to be carried.
//   - tag bit 1 ("sparse-only"): bits [6:1] hold a 6-bit residual value,
//     bit 0 is the tag. This form is chosen when i's low (p'-p) bits are
//     all zero, so the leading-zero run continues past what i can
//     represent and the residual records how far it goes.

// encodeSparse computes the sparse-mode register for hash, relative to
// dense precision p (the sketch's own compile-time precision), using
// the fixed sparse precision p' = 25.
func encodeSparse(hash uint64, p uint8) uint32 {
	i := uint32(hash >> (64 - sparsePrecision))

	// i's low (p'-p) bits: the hash bits that fall between the dense
	// prefix and the sparse prefix.
	tail := sliceBits64(hash, 63-p, 64-sparsePrecision)
	if tail != 0 {
		return i << 7
	}

	// the leading-zero run extends past i; count how much further it
	// goes within the remaining 64-p' hash bits, with a guard forcing
	// the low p' bits to 1 so the count can never exceed 64-p'.
	rest := sliceBits64(hash, 63-sparsePrecision, 0)
	guarded := rest<<sparsePrecision | (uint64(1)<<sparsePrecision - 1)
	r := uint8(bits.LeadingZeros64(guarded)) + 1

	return i<<7 | uint32(r)<<1 | 1
}

// decodeDense recovers the (index, value) pair that a dense-mode insert
// at precision p would have produced, from a sparse register reg
// encoded (at that same p) by encodeSparse.
func decodeDense(reg uint32, p uint8) (index uint32, value uint8) {
	index = reg >> (32 - p)

	if reg&1 == 1 {
		value = uint8((reg>>1)&0x3f) + (sparsePrecision - p)
		return index, value
	}

	tailWidth := uint(sparsePrecision - p)
	tail := (reg >> 7) & (1<<tailWidth - 1)
	value = uint8(bits.LeadingZeros32(tail)-(32-int(tailWidth))) + 1
	return index, value
}

// sliceBits64 extracts the inclusive bit range [low, high] of x, where
// bit 0 is the least significant bit and bit 63 is the most significant.
func sliceBits64(x uint64, high, low uint8) uint64 {
	return (x << (63 - high)) >> (low + (63 - high))
}

// denseRho computes the register value a dense-mode insert would record
// for hash at precision p: clz(hash<<p) + 1, saturating at 64-p+1 when
// the low 64-p bits are all zero.
func denseRho(hash uint64, p uint8) uint8 {
	w := hash << p
	if w == 0 {
		return 64 - p + 1
	}
	return uint8(bits.LeadingZeros64(w)) + 1
}

// denseIndex computes the dense register index (the top p bits of hash)
// that a dense-mode insert would use.
func denseIndex(hash uint64, p uint8) uint32 {
	return uint32(hash >> (64 - p))
}
