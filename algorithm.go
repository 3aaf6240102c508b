package rectfit

import "fmt"

// Algorithm selects which of the three exhaustive decision engines is used
// to answer a packing query. It is a closed enumeration; there is no
// provision for adding a fourth engine without a new constant here.
type Algorithm uint8

const (
	// Backtracking selects the top-left first-fit backtracking engine.
	Backtracking Algorithm = iota
	// DancingLinks selects the Algorithm X / exact-cover engine.
	DancingLinks
	// IntegerProgramming selects the feasibility-only ILP engine.
	IntegerProgramming
)

// Validate reports whether the receiver is one of the three defined
// algorithm constants. A value of nil is returned upon success, otherwise
// an error describing the invalid value.
func (a Algorithm) Validate() error {
	switch a {
	case Backtracking, DancingLinks, IntegerProgramming:
		return nil
	default:
		return fmt.Errorf("rectfit: %d is not a valid Algorithm", uint8(a))
	}
}

// String returns the name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case Backtracking:
		return "Backtracking"
	case DancingLinks:
		return "DancingLinks"
	case IntegerProgramming:
		return "IntegerProgramming"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// vim: ts=4
