package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientSpace is returned when a split would leave a sibling
	// below the minimum size. Nothing is changed.
	ErrInsufficientSpace = errors.New("insufficient space")

	// ErrStaleHandle is returned for a column or window that has already
	// been removed from the tree.
	ErrStaleHandle = errors.New("stale handle: node is no longer attached")

	// ErrOutOfRange is returned for an index with no child behind it.
	ErrOutOfRange = errors.New("index out of range")

	// ErrGestureActive is returned when a drag is already armed.
	ErrGestureActive = errors.New("a drag gesture is already in progress")

	// ErrSessionClosed is returned when a resolved or cancelled session is
	// used again.
	ErrSessionClosed = errors.New("drag session already finished")
)

// InvariantError describes a level whose sizes no longer match its children.
// It signals a programming error, never a user-facing condition.
type InvariantError struct {
	Level    string
	Children int
	Sizes    string
	Sum      Share
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("layout invariant violated on %s: %d children, sizes %s (sum %s)",
		e.Level, e.Children, e.Sizes, e.Sum)
}
