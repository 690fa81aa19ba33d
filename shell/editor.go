package shell

// LineCapacity is the fixed size of the input line buffer.
const LineCapacity = 256

// Editor is a fixed-capacity line buffer with a cursor.
// 0 <= cursor <= used <= LineCapacity always holds; every mutator reports
// whether it changed anything.
type Editor struct {
	buf    [LineCapacity]byte
	used   int
	cursor int
}

// Len returns the number of bytes in the line.
func (e *Editor) Len() int { return e.used }

// Cursor returns the insertion point, 0 being before the first byte.
func (e *Editor) Cursor() int { return e.cursor }

// Full reports whether the line has reached LineCapacity.
func (e *Editor) Full() bool { return e.used == len(e.buf) }

// Empty reports whether the line has no bytes.
func (e *Editor) Empty() bool { return e.used == 0 }

// AtEnd reports whether the cursor is after the last byte.
func (e *Editor) AtEnd() bool { return e.cursor == e.used }

// Bytes returns the line. The slice aliases the buffer and is valid until
// the next mutation.
func (e *Editor) Bytes() []byte { return e.buf[:e.used] }

// Tail returns the bytes from the cursor to the end of the line.
func (e *Editor) Tail() []byte { return e.buf[e.cursor:e.used] }

// Insert puts c at the cursor and advances the cursor. It fails when the
// line is full.
func (e *Editor) Insert(c byte) bool {
	if e.Full() {
		return false
	}
	copy(e.buf[e.cursor+1:e.used+1], e.buf[e.cursor:e.used])
	e.buf[e.cursor] = c
	e.cursor++
	e.used++
	return true
}

// Delete removes the byte under the cursor.
func (e *Editor) Delete() bool {
	if e.used == 0 || e.cursor == e.used {
		return false
	}
	copy(e.buf[e.cursor:], e.buf[e.cursor+1:e.used])
	e.used--
	return true
}

// Backspace removes the byte before the cursor.
func (e *Editor) Backspace() bool {
	if e.cursor == 0 {
		return false
	}
	copy(e.buf[e.cursor-1:], e.buf[e.cursor:e.used])
	e.cursor--
	e.used--
	return true
}

// StepLeft moves the cursor one byte towards the start of the line.
func (e *Editor) StepLeft() bool {
	if e.cursor == 0 {
		return false
	}
	e.cursor--
	return true
}

// StepRight moves the cursor one byte towards the end of the line.
func (e *Editor) StepRight() bool {
	if e.cursor >= e.used {
		return false
	}
	e.cursor++
	return true
}

// Clear empties the line without zeroing the buffer.
func (e *Editor) Clear() {
	e.used = 0
	e.cursor = 0
}

// Set replaces the line with b, truncated to capacity, and moves the cursor
// to the end.
func (e *Editor) Set(b []byte) {
	e.used = copy(e.buf[:], b)
	e.cursor = e.used
}
