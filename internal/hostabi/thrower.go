package hostabi

import (
	"errors"
)

var (
	// ErrNoHandler is returned by Throw when the host never registered an
	// exception handler.
	ErrNoHandler = errors.New("hostabi: no exception handler registered")

	// ErrNotDelivered is returned when the host handler reports that it
	// could not raise the exception.
	ErrNotDelivered = errors.New("hostabi: host did not accept the exception")

	// ErrUnsupported is returned when host callbacks cannot be called on
	// this platform.
	ErrUnsupported = errors.New("hostabi: host callbacks are not supported on this platform")
)

// Thrower delivers an exception message to the host.
type Thrower interface {
	Throw(msg string) error
}

// ThrowerFunc adapts a function to Thrower.
type ThrowerFunc func(msg string) error

func (f ThrowerFunc) Throw(msg string) error {
	return f(msg)
}

// cString returns msg as a NUL-terminated byte slice. Interior NULs are
// replaced so the host sees the whole message.
func cString(msg string) []byte {
	b := make([]byte, len(msg)+1)
	for i := 0; i < len(msg); i++ {
		c := msg[i]
		if c == 0 {
			c = '?'
		}
		b[i] = c
	}
	return b
}
