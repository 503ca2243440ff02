// Package history provides a linear undo/redo history for a single editable value.
//
// A Store keeps every distinct value the owner has committed, oldest first,
// and a cursor marking the value currently shown. Committing while the cursor
// is behind the newest entry discards everything after the cursor.
//
// A Store is not safe for concurrent use. Owners that share one between
// goroutines must serialize all calls.
package history

// Option configures a Store.
type Option func(*options)

type options struct {
	limit int
}

// WithLimit bounds the number of retained entries. When a commit would grow
// the history past n, the oldest entry is evicted. Values of n below 1 leave
// the history unbounded.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// Store is a bounded-or-unbounded linear history of values of type T.
type Store[T any] struct {
	entries     []T
	cursor      int
	equal       func(a, b T) bool
	limit       int
	subscribers map[int]func(T)
	nextSubID   int
}

// New creates a Store seeded with initial. Values are compared with ==.
func New[T comparable](initial T, opts ...Option) *Store[T] {
	return NewFunc(initial, func(a, b T) bool { return a == b }, opts...)
}

// NewFunc creates a Store seeded with initial that compares values with equal.
func NewFunc[T any](initial T, equal func(a, b T) bool, opts ...Option) *Store[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[T]{
		entries: []T{initial},
		equal:   equal,
		limit:   o.limit,
	}
}

// Value returns the value at the cursor.
func (s *Store[T]) Value() T {
	return s.entries[s.cursor]
}

// SetValue commits v. It reports false, and changes nothing, when v equals
// the current value.
func (s *Store[T]) SetValue(v T) bool {
	if s.equal(v, s.entries[s.cursor]) {
		return false
	}

	// Drop redo entries.
	s.entries = append(s.entries[:s.cursor+1], v)

	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = s.entries[len(s.entries)-s.limit:]
	}
	s.cursor = len(s.entries) - 1

	s.notify()
	return true
}

// Undo moves the cursor one entry back. It is a no-op at the oldest entry.
func (s *Store[T]) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	s.cursor--
	s.notify()
	return true
}

// Redo moves the cursor one entry forward. It is a no-op at the newest entry.
func (s *Store[T]) Redo() bool {
	if !s.CanRedo() {
		return false
	}
	s.cursor++
	s.notify()
	return true
}

// CanUndo reports whether an older entry exists.
func (s *Store[T]) CanUndo() bool {
	return s.cursor > 0
}

// CanRedo reports whether a newer entry exists.
func (s *Store[T]) CanRedo() bool {
	return s.cursor < len(s.entries)-1
}

// Len returns the number of retained entries.
func (s *Store[T]) Len() int {
	return len(s.entries)
}

// Cursor returns the index of the current entry.
func (s *Store[T]) Cursor() int {
	return s.cursor
}

// Entries returns a copy of the retained entries, oldest first.
func (s *Store[T]) Entries() []T {
	out := make([]T, len(s.entries))
	copy(out, s.entries)
	return out
}

// Subscribe registers fn to be called with the new current value after every
// commit, undo or redo that changes state. The returned func removes it.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	if s.subscribers == nil {
		s.subscribers = make(map[int]func(T))
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		delete(s.subscribers, id)
	}
}

func (s *Store[T]) notify() {
	if len(s.subscribers) == 0 {
		return
	}
	v := s.entries[s.cursor]
	for _, fn := range s.subscribers {
		fn(v)
	}
}
