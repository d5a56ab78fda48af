package hostabi

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/Lymia/PrincessEdit/native/internal/logging"
)

// exitAbort matches the status of a process killed by SIGABRT.
const exitAbort = 134

// Boundary converts failures of host operations into host exceptions.
// When an exception cannot be delivered the process is terminated: a
// broken exception channel leaves the host unaware of failed calls.
type Boundary struct {
	thrower Thrower
	abort   func(msg string)
}

// BoundaryOption configures a Boundary.
type BoundaryOption func(*Boundary)

// WithAbort replaces the function called when an exception cannot be
// delivered. The default logs the message and exits the process.
func WithAbort(fn func(msg string)) BoundaryOption {
	return func(b *Boundary) {
		b.abort = fn
	}
}

// NewBoundary returns a Boundary delivering exceptions through t.
func NewBoundary(t Thrower, opts ...BoundaryOption) *Boundary {
	b := &Boundary{thrower: t, abort: abort}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func abort(msg string) {
	fmt.Fprintf(os.Stderr, "princess native: %s\n[ aborting ]\n", msg)
	os.Exit(exitAbort)
}

// Fail delivers err to the host as an exception for operation op.
func (b *Boundary) Fail(op string, err error) {
	msg := op + ": " + err.Error()
	logging.L().Debug("host exception", slog.String("op", op), slog.String("error", err.Error()))

	if b.thrower == nil {
		b.deliveryFailed(msg, ErrNoHandler)
		return
	}
	if terr := b.thrower.Throw(msg); terr != nil {
		b.deliveryFailed(msg, terr)
	}
}

func (b *Boundary) deliveryFailed(msg string, err error) {
	logging.L().Error("cannot throw host exception",
		slog.String("exception", msg), slog.String("error", err.Error()))
	b.abort("error throwing native exception: " + err.Error() + ": " + msg)
}

// PanicError is a recovered panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	switch v := e.Value.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return "could not retrieve panic data"
	}
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

func (b *Boundary) recovered(op string, r any) {
	perr := &PanicError{Value: r, Stack: debug.Stack()}
	logging.L().Warn("recovered panic", slog.String("op", op),
		slog.String("panic", perr.Error()), slog.String("stack", string(perr.Stack)))
	b.Fail(op, perr)
}

// Do runs fn, delivering a returned error or a panic as one exception.
func (b *Boundary) Do(op string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			b.recovered(op, r)
		}
	}()
	if err := fn(); err != nil {
		b.Fail(op, err)
	}
}

// Call runs fn and returns its value. On an error or a panic it delivers
// one exception and returns sentinel instead.
func Call[T any](b *Boundary, op string, sentinel T, fn func() (T, error)) (result T) {
	defer func() {
		if r := recover(); r != nil {
			b.recovered(op, r)
			result = sentinel
		}
	}()
	v, err := fn()
	if err != nil {
		b.Fail(op, err)
		return sentinel
	}
	return v
}
