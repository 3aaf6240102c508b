package rectfit

// Progress is an optional, advisory step counter. Implementations observe
// search activity; they MUST NOT be required for correctness, and a nil
// Progress is always safe to pass.
type Progress interface {
	// Step advances the counter by n. n is always positive.
	Step(n int)
}

// ProgressFunc adapts a plain function to the Progress interface.
type ProgressFunc func(n int)

// Step calls the underlying function.
func (f ProgressFunc) Step(n int) {
	f(n)
}

// vim: ts=4
