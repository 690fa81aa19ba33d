// Package ring implements a fixed-capacity FIFO.
//
// The buffer never grows. Pushing into a full buffer drops the oldest
// elements.
package ring

// Buffer is a circular FIFO. The zero value has no storage; use New.
type Buffer[T any] struct {
	buf  []T
	head int // index of the oldest element
	n    int
}

// New returns a buffer with room for capacity elements.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer[T]{buf: make([]T, capacity)}
}

func (b *Buffer[T]) Len() int  { return b.n }
func (b *Buffer[T]) Cap() int  { return len(b.buf) }
func (b *Buffer[T]) Free() int { return len(b.buf) - b.n }

func (b *Buffer[T]) slot(i int) int {
	i += b.head
	if i >= len(b.buf) {
		i -= len(b.buf)
	}
	return i
}

// PushOverwrite appends v, dropping the oldest element when full.
// It reports false only for a zero-capacity buffer.
func (b *Buffer[T]) PushOverwrite(v T) bool {
	if len(b.buf) == 0 {
		return false
	}
	if b.n == len(b.buf) {
		b.buf[b.head] = v
		b.head = b.slot(1)
		return true
	}
	b.buf[b.slot(b.n)] = v
	b.n++
	return true
}

// PushSliceOverwrite appends vs, dropping as many old elements as needed.
// When vs is longer than the capacity only its tail is kept. It returns the
// number of previously stored elements that were dropped.
func (b *Buffer[T]) PushSliceOverwrite(vs []T) int {
	if len(b.buf) == 0 {
		return 0
	}
	dropped := 0
	if len(vs) > len(b.buf) {
		vs = vs[len(vs)-len(b.buf):]
	}
	if over := len(vs) - b.Free(); over > 0 {
		dropped = b.Discard(over)
	}
	for _, v := range vs {
		b.buf[b.slot(b.n)] = v
		b.n++
	}
	return dropped
}

// Discard drops up to n of the oldest elements and returns how many were dropped.
func (b *Buffer[T]) Discard(n int) int {
	if n > b.n {
		n = b.n
	}
	if n <= 0 {
		return 0
	}
	b.head = b.slot(n)
	b.n -= n
	if b.n == 0 {
		b.head = 0
	}
	return n
}

// At returns the element at logical index i, where 0 is the oldest.
// It panics if i is out of range.
func (b *Buffer[T]) At(i int) T {
	if i < 0 || i >= b.n {
		panic("ring: index out of range")
	}
	return b.buf[b.slot(i)]
}

// AppendTo appends the elements in logical range [from, to) to dst.
func (b *Buffer[T]) AppendTo(dst []T, from, to int) []T {
	if from < 0 {
		from = 0
	}
	if to > b.n {
		to = b.n
	}
	for i := from; i < to; i++ {
		dst = append(dst, b.buf[b.slot(i)])
	}
	return dst
}
