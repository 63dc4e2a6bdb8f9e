// Package dice provides the randomness abstraction used by the rules code.
//
// All probabilistic rules draw through a Source so that tests can substitute
// a deterministic implementation.
package dice

// Source is the randomness provider for rule draws.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
