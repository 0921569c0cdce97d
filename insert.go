package hllpp

// Add hashes v with h and absorbs it into s. It is the typed entry
// point callers should use; InsertHash is for callers that already have
// a 64-bit hash (e.g. tests that build hashes with chosen bit patterns).
func Add[T any](s *Sketch, v T, h Hasher[T]) {
	s.InsertHash(h.Hash(v))
}
