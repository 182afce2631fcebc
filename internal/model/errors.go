package model

import "errors"

// Domain errors surfaced by the lifecycle layer. Transport layers map these
// to HTTP status codes: ErrNotFound -> 404, ErrInvalidParent and
// ErrCycleDetected -> 400, ErrIntegrityViolation -> 500.
var (
	// ErrNotFound indicates a referenced process or area id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidParent indicates the supplied parent does not exist or
	// belongs to a different area than the child.
	ErrInvalidParent = errors.New("invalid parent")

	// ErrCycleDetected indicates a move target is the node itself or one of
	// its own descendants.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrIntegrityViolation indicates traversal found an unexpected cycle in
	// stored data. It should be unreachable while write-time invariants hold.
	ErrIntegrityViolation = errors.New("integrity violation")
)
