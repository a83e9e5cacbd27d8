// Package collections implements the huge paged array primitives that back
// billion-element node and relationship storage: page-addressed arrays,
// an atomic growing bitset, a paged stack, and the hybrid search routines
// used to probe sorted adjacency targets.
package collections

import "errors"

// Sentinel errors for the kinds of failure a caller of this package can hit.
// Each maps to one of the error kinds in the storage-engine error taxonomy.
var (
	// ErrInvalidSize is returned for negative sizes or page-math inputs that
	// violate the power-of-two contract.
	ErrInvalidSize = errors.New("collections: invalid size")

	// ErrOverflow is returned when a requested capacity exceeds the
	// platform's single-allocation cap.
	ErrOverflow = errors.New("collections: capacity overflow")

	// ErrUnderflow is returned by a paged stack's Pop/Peek on an empty
	// stack, or when retreating past the first page.
	ErrUnderflow = errors.New("collections: stack underflow")
)
