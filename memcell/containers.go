package memcell

import "cmp"

// IntCell is convenience accessors for a Relay over an integer-like value.
// Each mutator performs a read-modify-write against the backing cell's
// mutex atomically (via WithLock when backed directly by a Memory cell),
// never as a separate get-then-set pair, so concurrent mutators cannot
// interleave and lose updates.
type IntCell[T int | int32 | int64 | float64] struct {
	cell *Memory[T]
}

// NewIntCell wraps a Memory cell with increment/decrement/add mutators.
func NewIntCell[T int | int32 | int64 | float64](cell *Memory[T]) IntCell[T] {
	return IntCell[T]{cell: cell}
}

// Relay exposes the wrapped cell as a plain Relay.
func (c IntCell[T]) Relay() Relay[T] { return FromMemory(c.cell) }

// Increment adds 1 and returns the new value.
func (c IntCell[T]) Increment() T { return c.Add(1) }

// Decrement subtracts 1 and returns the new value.
func (c IntCell[T]) Decrement() T { return c.Add(-1) }

// Add adds delta and returns the new value, atomically.
func (c IntCell[T]) Add(delta T) T {
	var result T
	c.cell.WithLock(func(cur T) T {
		result = cur + delta
		return result
	})
	return result
}

// OrderedSet is convenience accessors for a Relay over a slice treated as an
// ordered, duplicate-free container. Mutations read-modify-write atomically
// against the backing Memory cell.
type OrderedSet[T cmp.Ordered] struct {
	cell *Memory[[]T]
}

// NewOrderedSet wraps a Memory cell holding a slice with set-like mutators.
func NewOrderedSet[T cmp.Ordered](cell *Memory[[]T]) OrderedSet[T] {
	return OrderedSet[T]{cell: cell}
}

// Relay exposes the wrapped cell as a plain Relay.
func (s OrderedSet[T]) Relay() Relay[[]T] { return FromMemory(s.cell) }

// Contains reports whether v is present.
func (s OrderedSet[T]) Contains(v T) bool {
	for _, x := range s.cell.Get() {
		if x == v {
			return true
		}
	}
	return false
}

// Insert appends v if absent, preserving existing order. Returns true if v
// was newly inserted.
func (s OrderedSet[T]) Insert(v T) bool {
	inserted := false
	s.cell.WithLock(func(cur []T) []T {
		for _, x := range cur {
			if x == v {
				return cur
			}
		}
		inserted = true
		return append(cur, v)
	})
	return inserted
}

// Remove deletes v if present, preserving the order of remaining elements.
// Returns true if v was present.
func (s OrderedSet[T]) Remove(v T) bool {
	removed := false
	s.cell.WithLock(func(cur []T) []T {
		for i, x := range cur {
			if x == v {
				removed = true
				next := make([]T, 0, len(cur)-1)
				next = append(next, cur[:i]...)
				next = append(next, cur[i+1:]...)
				return next
			}
		}
		return cur
	})
	return removed
}

// Append appends v unconditionally (duplicates allowed), preserving order.
func (s OrderedSet[T]) Append(v T) {
	s.cell.WithLock(func(cur []T) []T { return append(cur, v) })
}

// Union merges other into the set, inserting only values not already
// present, in other's order.
func (s OrderedSet[T]) Union(other []T) {
	s.cell.WithLock(func(cur []T) []T {
		present := make(map[T]struct{}, len(cur))
		for _, x := range cur {
			present[x] = struct{}{}
		}
		for _, x := range other {
			if _, ok := present[x]; !ok {
				cur = append(cur, x)
				present[x] = struct{}{}
			}
		}
		return cur
	})
}
