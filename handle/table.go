package handle

import (
	"math"
	"sync"
)

// Handle is the integer identifier handed to the host for a table entry.
// It matches the host's signed 32-bit int.
type Handle int32

const (
	// Invalid is returned to the host in place of a handle when
	// allocation fails.
	Invalid Handle = -1

	// MaxHandle is the largest handle value a table will ever hand out.
	MaxHandle Handle = math.MaxInt32
)

// slot is one entry of a table. A slot with a nil ref is free, and next
// holds the index of the following free slot (len(slots) terminates the
// list).
type slot[T any] struct {
	ref  *T
	next int
}

// Table maps small non-negative integers to shared values.
//
// Freed indices are kept on an intrusive free list and reused most
// recently freed first. Resolve takes the table's read lock, Allocate and
// Release take the write lock. The values themselves are not protected by
// the table lock: each value is expected to carry its own synchronization.
//
// A pointer returned by Resolve stays valid after its handle is released;
// releasing only makes the index reusable.
//
// Table is safe for concurrent use and must not be copied after creation.
type Table[T any] struct {
	name string
	max  Handle

	mu    sync.RWMutex
	slots []slot[T]
	head  int
	live  int
}

// New creates an empty table. The name identifies the table in errors.
func New[T any](name string, opts ...Option) *Table[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Table[T]{
		name: name,
		max:  cfg.maxHandle,
	}
}

// Name returns the name the table was created with.
func (t *Table[T]) Name() string {
	return t.name
}

// Allocate stores v in the first free slot, or a new slot at the end of
// the table, and returns its handle.
func (t *Table[T]) Allocate(v *T) (Handle, error) {
	if v == nil {
		return Invalid, t.fail(opAllocate, Invalid, ErrNilValue)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.head > int(t.max) {
		return Invalid, t.fail(opAllocate, Invalid, ErrExhausted)
	}

	id := t.head
	if id < len(t.slots) {
		s := &t.slots[id]
		if s.ref != nil {
			return Invalid, t.fail(opAllocate, Handle(id), ErrCorrupted)
		}
		t.head = s.next
		s.ref = v
		s.next = 0
	} else {
		t.slots = append(t.slots, slot[T]{ref: v})
		t.head = len(t.slots)
	}
	t.live++

	return Handle(id), nil
}

// Resolve returns the value stored under h.
func (t *Table[T]) Resolve(h Handle) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if h < 0 || int(h) >= len(t.slots) {
		return nil, t.fail(opResolve, h, ErrOutOfRange)
	}
	ref := t.slots[h].ref
	if ref == nil {
		return nil, t.fail(opResolve, h, ErrUseAfterFree)
	}
	return ref, nil
}

// Release frees the slot behind h and puts it at the front of the free
// list. Values already returned by Resolve are unaffected.
func (t *Table[T]) Release(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h < 0 || int(h) >= len(t.slots) {
		return t.fail(opRelease, h, ErrOutOfRange)
	}
	s := &t.slots[h]
	if s.ref == nil {
		return t.fail(opRelease, h, ErrUseAfterFree)
	}
	s.ref = nil
	s.next = t.head
	t.head = int(h)
	t.live--

	return nil
}

// Len returns the number of live handles.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// Cap returns the number of slots, live or free.
func (t *Table[T]) Cap() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.slots)
}

func (t *Table[T]) fail(op string, h Handle, err error) error {
	return &Error{Table: t.name, Op: op, Handle: h, Err: err}
}
