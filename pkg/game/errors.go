package game

import (
	"errors"
	"fmt"
)

// Error classes for command resolution. Container and item-registry
// classes (insufficient quantity, capacity exceeded, item not found)
// live with their owning packages; these cover the rest of the
// taxonomy. All of them are recovered at the command boundary.
var (
	// ErrNoExit: the current room has no edge in the requested direction.
	ErrNoExit = errors.New("no exit")
	// ErrDoorLocked: the edge is gated and the player lacks the key.
	ErrDoorLocked = errors.New("door locked")
	// ErrNotOwned: a use or trade names an item the player does not hold.
	ErrNotOwned = errors.New("item not owned")
	// ErrUnknownNPC: no character resolves from the given alias.
	ErrUnknownNPC = errors.New("unknown character")
	// ErrInvalidArgument: malformed quantity or out-of-domain answer.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalState: the command is well-formed but not allowed right
	// now, e.g. answering an undiscovered riddle or dropping a door key
	// inside a locked room.
	ErrIllegalState = errors.New("illegal state")
)

// commandError pairs an error class with the player-facing message the
// command boundary should show.
type commandError struct {
	kind error
	msg  string
}

func (e *commandError) Error() string { return e.msg }

func (e *commandError) Unwrap() error { return e.kind }

// failf builds a commandError with a formatted player-facing message.
func failf(kind error, format string, args ...any) error {
	return &commandError{kind: kind, msg: fmt.Sprintf(format, args...)}
}
