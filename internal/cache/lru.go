package cache

// element is a node of the recency list. It carries the key so that
// evicting the tail can also delete the map entry.
type element[K comparable, V any] struct {
	key   K
	value V
	prev  *element[K, V]
	next  *element[K, V]
}

// recency is a doubly-linked list ordered from most recently used (front)
// to least recently used (back). It is not safe for concurrent use.
type recency[K comparable, V any] struct {
	front *element[K, V]
	back  *element[K, V]
	len   int
}

func (l *recency[K, V]) pushFront(e *element[K, V]) {
	e.prev = nil
	e.next = l.front
	if l.front != nil {
		l.front.prev = e
	} else {
		l.back = e
	}
	l.front = e
	l.len++
}

func (l *recency[K, V]) moveToFront(e *element[K, V]) {
	if e == l.front {
		return
	}
	l.remove(e)
	l.pushFront(e)
}

func (l *recency[K, V]) remove(e *element[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.front = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.back = e.prev
	}
	e.prev = nil
	e.next = nil
	l.len--
}

// popBack unlinks and returns the least recently used element, or nil.
func (l *recency[K, V]) popBack() *element[K, V] {
	e := l.back
	if e != nil {
		l.remove(e)
	}
	return e
}
