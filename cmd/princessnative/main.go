// Command princessnative is the native library loaded by the PrincessEdit
// host. Build it as a C shared library:
//
//	go build -buildmode=c-shared -o libprincessnative.so ./cmd/princessnative
//
// The host registers an exception handler with
// princess_set_exception_handler before calling anything else. Every
// other exported function forwards to a single native.Bridge created on
// first use from the configuration named by PRINCESS_NATIVE_CONFIG.
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/Lymia/PrincessEdit/native"
	"github.com/Lymia/PrincessEdit/native/config"
	"github.com/Lymia/PrincessEdit/native/internal/hostabi"
)

var (
	thrower hostabi.CallbackThrower

	bridge = sync.OnceValue(func() *native.Bridge {
		cfg, err := config.FromEnv(os.LookupEnv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "princess native: %v; using defaults\n", err)
			cfg = config.Default()
		}
		l, err := newLogger(cfg.Log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "princess native: logger: %v\n", err)
		} else {
			native.SetLogger(l)
		}
		if data, err := cfg.Marshal(); err == nil {
			native.Logger().Debug("effective configuration", "yaml", string(data))
		}
		return native.New(cfg, &thrower)
	})
)

func main() {}
