//go:build !((darwin || linux || windows) && (amd64 || arm64))

package hostabi

// CallbackThrower delivers exceptions through a C function pointer
// registered by the host. Calling host functions is not supported on this
// platform, so every exception ends in a fail-fast abort.
type CallbackThrower struct{}

func (t *CallbackThrower) SetHandler(fn uintptr) error {
	if fn == 0 {
		return nil
	}
	return ErrUnsupported
}

func (t *CallbackThrower) Throw(string) error {
	return ErrNoHandler
}
