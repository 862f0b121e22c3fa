package ports

// OutcomeSource supplies the pseudo-random draws used by simulated order
// settlement. It is an interface so tests can fix the seed and assert exact
// resolution outcomes.
type OutcomeSource interface {
	// Seed re-arms the source; the engine seeds with the cycle counter
	// before each resolution pass.
	Seed(n uint32)

	// Draw returns the next value in [0,1).
	Draw() float64
}
