package app

// Ring keeps the most recent samples of anything the panels chart or list.
type Ring[T any] struct {
	items []T
	next  int
	full  bool
}

// NewRing creates a ring holding up to size items.
func NewRing[T any](size int) *Ring[T] {
	return &Ring[T]{items: make([]T, max(1, size))}
}

// Add appends v, overwriting the oldest item once the ring is full.
func (r *Ring[T]) Add(v T) {
	r.items[r.next] = v
	r.next++
	if r.next == len(r.items) {
		r.next, r.full = 0, true
	}
}

// Len is the number of items held.
func (r *Ring[T]) Len() int {
	if r.full {
		return len(r.items)
	}
	return r.next
}

// Slice returns the items oldest first.
func (r *Ring[T]) Slice() []T {
	if !r.full {
		return append([]T(nil), r.items[:r.next]...)
	}
	return append(append(make([]T, 0, len(r.items)), r.items[r.next:]...), r.items[:r.next]...)
}

// Newest returns up to n items, newest first.
func (r *Ring[T]) Newest(n int) []T {
	all := r.Slice()
	n = min(n, len(all))
	out := make([]T, n)
	for i := range out {
		out[i] = all[len(all)-1-i]
	}
	return out
}
