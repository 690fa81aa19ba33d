package shell

import (
	"io"
	"sync"

	"termsh/internal/ring"
)

// DefaultHistorySize is the byte capacity of the history store.
const DefaultHistorySize = 1024

const historySep = '\n'

// Span is a half-open range [Begin, End) of logical history offsets.
type Span struct {
	Begin, End int
}

func (s Span) Len() int    { return s.End - s.Begin }
func (s Span) Empty() bool { return s.End <= s.Begin }

// History stores committed lines as newline-terminated bytes in a ring and
// keeps a recall cursor for previous/next navigation. When space runs out
// the oldest whole lines are dropped.
//
// History is safe for concurrent use, so a command listing it may run on
// another goroutine while lines are committed.
type History struct {
	mu     sync.Mutex
	ring   *ring.Buffer[byte]
	recall int // logical offset of the recalled line; Len() when not recalling
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{ring: ring.New[byte](size)}
}

// Len returns the number of stored bytes, separators included.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ring.Len()
}

func (h *History) Cap() int { return h.ring.Cap() }

// Recalling reports whether a recall is in progress.
func (h *History) Recalling() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recall < h.ring.Len()
}

// Reset moves the recall cursor back to the end.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reset()
}

func (h *History) reset() { h.recall = h.ring.Len() }

func (h *History) indexFrom(from, to int, c byte) int {
	for i := from; i < to; i++ {
		if h.ring.At(i) == c {
			return i
		}
	}
	return -1
}

func (h *History) lastIndexIn(from, to int, c byte) int {
	for i := to - 1; i >= from; i-- {
		if h.ring.At(i) == c {
			return i
		}
	}
	return -1
}

// lastLine returns the span of the newest stored line.
func (h *History) lastLine() Span {
	n := h.ring.Len()
	if n == 0 {
		return Span{}
	}
	begin := h.lastIndexIn(0, n-1, historySep) + 1
	return Span{Begin: begin, End: n - 1}
}

// AddLine stores line and ends any recall. It reports false when the line
// cannot be stored: it is empty, repeats the newest line, or is longer than
// the store.
func (h *History) AddLine(line []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.reset()
	if len(line) == 0 || len(line)+1 > h.ring.Cap() {
		return false
	}
	if last := h.lastLine(); last.Len() == len(line) && h.equal(last, line) {
		return false
	}
	// The stored bytes always end in a separator, so the one at or after the
	// last overwritten byte closes the line that gets cut.
	frag := 0
	if over := len(line) + 1 - h.ring.Free(); over > 0 {
		frag = h.indexFrom(over-1, h.ring.Len(), historySep) + 1 - over
	}
	h.ring.PushSliceOverwrite(line)
	h.ring.PushOverwrite(historySep)
	h.ring.Discard(frag)
	return true
}

func (h *History) equal(s Span, b []byte) bool {
	for i := range b {
		if h.ring.At(s.Begin+i) != b[i] {
			return false
		}
	}
	return true
}

// RecallPrevious steps the recall cursor to the line before it and returns
// that line. At the oldest line it returns the oldest line again. The span
// is empty only when the history is empty.
func (h *History) RecallPrevious() Span {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ring.Len() == 0 {
		return Span{}
	}
	if h.recall == 0 {
		return h.current()
	}
	end := h.recall - 1 // separator closing the previous line
	begin := h.lastIndexIn(0, end, historySep) + 1
	h.recall = begin
	return Span{Begin: begin, End: end}
}

// RecallNext steps the recall cursor to the following line and returns it.
// At the newest line, or when not recalling, it returns an empty span and
// leaves the cursor where it is.
func (h *History) RecallNext() Span {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.ring.Len()
	if h.recall >= n {
		return Span{Begin: n, End: n}
	}
	sep := h.indexFrom(h.recall, n, historySep)
	begin := sep + 1
	if begin >= n {
		return Span{Begin: n, End: n}
	}
	end := h.indexFrom(begin, n, historySep)
	h.recall = begin
	return Span{Begin: begin, End: end}
}

// Current returns the line under the recall cursor.
func (h *History) Current() Span {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current()
}

func (h *History) current() Span {
	n := h.ring.Len()
	if h.recall >= n {
		return Span{Begin: n, End: n}
	}
	return Span{Begin: h.recall, End: h.indexFrom(h.recall, n, historySep)}
}

// Append copies the bytes of s to dst.
func (h *History) Append(dst []byte, s Span) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ring.AppendTo(dst, s.Begin, s.End)
}

// WriteTo writes every stored line, oldest first. The lines are copied
// before w is called.
func (h *History) WriteTo(w io.Writer) (int64, error) {
	h.mu.Lock()
	b := h.ring.AppendTo(make([]byte, 0, h.ring.Len()), 0, h.ring.Len())
	h.mu.Unlock()
	n, err := w.Write(b)
	return int64(n), err
}
