package indexed_tree

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEvent reports a formula argument name that has no index.
	ErrUnknownEvent = errors.New("unknown event name")
	// ErrUnknownFormula reports a formula with an unrecognized operator.
	ErrUnknownFormula = errors.New("unknown formula type")
	// ErrMissingVote reports an atleast formula without a usable vote number.
	ErrMissingVote = errors.New("missing or invalid vote number")
	// ErrLimitOrder reports a non-positive cut set order limit.
	ErrLimitOrder = errors.New("limit order must be positive")
)

// StructuralError is a fatal defect in the gate graph. It carries the
// index of the offending gate so callers can point at the exact spot.
type StructuralError struct {
	Index  int
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at gate %d: %s", e.Index, e.Reason)
}
