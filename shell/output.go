package shell

import (
	"fmt"
	"io"
	"sync"
)

const (
	ansiReset     = "\x1b[0m"
	ansiRed       = "\x1b[31m"
	ansiGreen     = "\x1b[32m"
	ansiClearLine = "\r\x1b[K"
	ansiClearAll  = "\x1b[2J\x1b[H"
)

// Output serializes writes to the terminal sink and applies the line-ending
// policy. It is the only state shared between the interactive path and
// commands executed from other goroutines.
type Output struct {
	mu   sync.Mutex
	w    io.Writer
	crlf bool
	last byte
	buf  []byte
}

// NewOutput wraps w. With crlf set every "\n" not already preceded by "\r"
// is written as "\r\n".
func NewOutput(w io.Writer, crlf bool) *Output {
	return &Output{w: w, crlf: crlf, last: '\n'}
}

func (o *Output) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.writeLocked(p)
}

func (o *Output) writeLocked(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	out := p
	if o.crlf {
		b := o.buf[:0]
		prev := o.last
		for _, c := range p {
			if c == '\n' && prev != '\r' {
				b = append(b, '\r')
			}
			b = append(b, c)
			prev = c
		}
		o.buf = b
		out = b
	}
	if _, err := o.w.Write(out); err != nil {
		return 0, fmt.Errorf("shell output: %w", err)
	}
	o.last = p[len(p)-1]
	return len(p), nil
}

func (o *Output) WriteString(s string) (int, error) {
	return o.Write([]byte(s))
}

func (o *Output) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(o, format, args...)
}

// WriteRepeat writes c n times.
func (o *Output) WriteRepeat(c byte, n int) {
	if n <= 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	_, _ = o.writeLocked(b)
}

// AtLineStart reports whether the last byte written was a newline.
func (o *Output) AtLineStart() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last == '\n'
}

// EnsureNewline ends a partial line.
func (o *Output) EnsureNewline() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last != '\n' {
		_, _ = o.writeLocked([]byte{'\n'})
	}
}
