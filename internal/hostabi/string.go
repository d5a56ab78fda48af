package hostabi

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// String is a host string as UTF-16 code units. A nil String means the host
// passed no string at all, which is distinct from the empty string.
type String []uint16

// StringFromPtr wraps n code units at p without copying. The result is only
// valid for the duration of the host call that supplied p.
func StringFromPtr(p *uint16, n int32) String {
	if p == nil {
		return nil
	}
	if n <= 0 {
		return String{}
	}
	return String(unsafe.Slice(p, int(n)))
}

// EncodeString converts s to UTF-16 code units.
func EncodeString(s string) String {
	b, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		// The encoder replaces invalid UTF-8 and does not fail.
		panic(err)
	}
	units := make(String, len(b)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return units
}

// IsNil reports whether the host passed no string.
func (s String) IsNil() bool {
	return s == nil
}

// Decode converts the code units to UTF-8. Unpaired surrogates become
// U+FFFD.
func (s String) Decode() (string, error) {
	if len(s) == 0 {
		return "", nil
	}
	b := make([]byte, 2*len(s))
	for i, u := range s {
		binary.LittleEndian.PutUint16(b[2*i:], u)
	}
	out, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("hostabi: decode string: %w", err)
	}
	return string(out), nil
}

// BytesFromPtr wraps n bytes at p without copying.
func BytesFromPtr(p *byte, n int32) []byte {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice(p, int(n))
}
