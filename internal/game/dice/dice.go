// Package dice provides the randomness abstraction used by the combat engine.
// All probabilistic decisions (opposed checks, target selection, zone picks,
// condition wear) draw from an injected Source so tests can pin outcomes.
package dice

// Source is the randomness provider for the engine.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Percent draws a uniform roll in [0, 100).
//
// Precondition: src must be non-nil.
func Percent(src Source) int {
	return src.Intn(100)
}

// Between draws a uniform int in [lo, hi] inclusive.
//
// Precondition: lo <= hi; src must be non-nil.
func Between(src Source, lo, hi int) int {
	if lo == hi {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Pick returns a uniformly chosen index into a collection of length n.
//
// Precondition: n > 0.
func Pick(src Source, n int) int {
	return src.Intn(n)
}
