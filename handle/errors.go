package handle

import (
	"errors"
	"strconv"
)

// Sentinel errors for handle tables.
var (
	// ErrOutOfRange is returned for a handle that is negative or past the
	// end of the table.
	ErrOutOfRange = errors.New("handle: out of range")

	// ErrUseAfterFree is returned when a handle designates a released
	// slot, including a second release of the same handle.
	ErrUseAfterFree = errors.New("handle: use after free")

	// ErrExhausted is returned when every handle up to the table maximum
	// is live.
	ErrExhausted = errors.New("handle: out of allocatable handles")

	// ErrNilValue is returned when allocating a nil value.
	ErrNilValue = errors.New("handle: nil value")

	// ErrCorrupted is returned when the free list points at a live slot.
	ErrCorrupted = errors.New("handle: free list corrupted")
)

const (
	opAllocate = "allocate"
	opResolve  = "resolve"
	opRelease  = "release"
)

// Error describes a failed table operation.
type Error struct {
	Table  string
	Op     string
	Handle Handle
	Err    error
}

func (e *Error) Error() string {
	msg := "handle table '" + e.Table + "': " + e.Op
	if e.Handle != Invalid {
		msg += " " + strconv.Itoa(int(e.Handle))
	}
	return msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
