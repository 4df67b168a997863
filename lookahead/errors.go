package lookahead

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMissingPot is returned when a tree node reaches the scatter step
	// without a pot set by the tree builder.
	ErrMissingPot = errors.New("node has no pot")
	// ErrMissingCallChild is returned when the root has no check/call child
	// to describe the opening action.
	ErrMissingCallChild = errors.New("root has no call child")
	// ErrNoValueNetwork is returned when a lookahead ends before the last
	// street but no value network was configured.
	ErrNoValueNetwork = errors.New("no value network configured")
	// ErrSnapshotNotFound is returned by a SnapshotStore for an unknown key.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// StructureError reports a public tree that cannot be laid out
// in lookahead tensors.
type StructureError struct {
	Depth int
	// Coordinates of the offending node, if it was placed.
	Coords *Coordinates
	Node   fmt.Stringer
	Reason string
}

func (e *StructureError) Error() string {
	msg := fmt.Sprintf("invalid tree structure at depth %d", e.Depth)
	if e.Coords != nil {
		msg += fmt.Sprintf(" %v", *e.Coords)
	}
	if e.Node != nil {
		msg += fmt.Sprintf(" (%v)", e.Node)
	}
	return msg + ": " + e.Reason
}

func structureErrorf(depth int, coords *Coordinates, node interface{}, format string, args ...interface{}) error {
	var s fmt.Stringer
	if n, ok := node.(fmt.Stringer); ok {
		s = n
	}

	return errors.WithStack(&StructureError{
		Depth:  depth,
		Coords: coords,
		Node:   s,
		Reason: fmt.Sprintf(format, args...),
	})
}
