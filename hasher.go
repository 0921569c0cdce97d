package hllpp

import "github.com/dchest/siphash"

// hashKey0 and hashKey1 form the fixed 16-byte SipHash key used by the
// default hasher. This is a design choice, not a secret: every worker
// must hash with the same key for the sketch to be meaningful, but the
// key need not be protected from disclosure.
const (
	hashKey0 uint64 = 0x0001020304050607
	hashKey1 uint64 = 0x08090a0b0c0d0e0f
)

// Hasher produces a deterministic 64-bit hash of a value of type T. It
// must be pure and return the same result for the same logical value on
// every worker; implementations backed by padding- or
// pointer-sensitive byte images will still run, but their hash is only
// as stable as that byte image.
type Hasher[T any] interface {
	Hash(v T) uint64
}

// BytesHasher hashes a value by first reducing it to its byte image via
// Encode, then applying a keyed SipHash-2-4. Construct one directly for
// any value type that has a stable byte encoding.
type BytesHasher[T any] struct {
	Encode func(T) []byte
}

// Hash implements Hasher[T].
func (h BytesHasher[T]) Hash(v T) uint64 {
	return hashBytes(h.Encode(v))
}

// hashBytes is a deterministic PRF over the raw byte image of a value,
// identical on every worker, with a fixed 16-byte key.
func hashBytes(b []byte) uint64 {
	return siphash.Hash(hashKey0, hashKey1, b)
}

// ByteHasher is the canonical Hasher[[]byte]: callers that already have
// a byte slice representation of their values can use it directly
// instead of constructing a BytesHasher with an identity Encode func.
var ByteHasher Hasher[[]byte] = byteHasher{}

type byteHasher struct{}

func (byteHasher) Hash(v []byte) uint64 { return hashBytes(v) }

// StringHasher hashes strings without an intermediate allocation beyond
// what the runtime's string-to-bytes conversion at the call site
// requires.
var StringHasher Hasher[string] = stringHasher{}

type stringHasher struct{}

func (stringHasher) Hash(v string) uint64 { return hashBytes([]byte(v)) }
