//go:build (darwin || linux || windows) && (amd64 || arm64)

package hostabi

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

// CallbackThrower delivers exceptions through a C function pointer
// registered by the host, with the signature
//
//	int32_t handler(const char *msg);
//
// A non-zero return means the host could not raise the exception.
type CallbackThrower struct {
	mu      sync.RWMutex
	handler func(msg *byte) int32
}

// SetHandler registers the host function at fn. A zero fn unregisters it.
func (t *CallbackThrower) SetHandler(fn uintptr) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if fn == 0 {
		t.handler = nil
		return nil
	}
	var handler func(msg *byte) int32
	if err := register(&handler, fn); err != nil {
		return err
	}
	t.handler = handler
	return nil
}

func register(fptr *func(*byte) int32, fn uintptr) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hostabi: register exception handler: %v", r)
		}
	}()
	purego.RegisterFunc(fptr, fn)
	return nil
}

func (t *CallbackThrower) Throw(msg string) error {
	t.mu.RLock()
	handler := t.handler
	t.mu.RUnlock()

	if handler == nil {
		return ErrNoHandler
	}
	b := cString(msg)
	if rc := handler(&b[0]); rc != 0 {
		return fmt.Errorf("%w (status %d)", ErrNotDelivered, rc)
	}
	return nil
}
