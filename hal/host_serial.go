//go:build !tinygo

package hal

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// hostSerial is a Serial whose input is fed by an attached reader (stdin)
// and by injected bytes (window keyboard), and whose output is a writer.
type hostSerial struct {
	rx      chan []byte
	pending []byte

	closed    chan struct{}
	closeOnce sync.Once

	mu sync.Mutex
	w  io.Writer
}

func newHostSerial(w io.Writer) *hostSerial {
	return &hostSerial{
		rx:     make(chan []byte, 64),
		closed: make(chan struct{}),
		w:      w,
	}
}

func (s *hostSerial) Read(p []byte) (int, error) {
	if len(s.pending) == 0 {
		select {
		case b := <-s.rx:
			s.pending = b
		case <-s.closed:
			select {
			case b := <-s.rx:
				s.pending = b
			default:
				return 0, io.EOF
			}
		}
	}
	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// inject queues b as input without blocking; it is dropped when the queue
// is full.
func (s *hostSerial) inject(b []byte) {
	if len(b) == 0 {
		return
	}
	cp := append([]byte(nil), b...)
	select {
	case s.rx <- cp:
	default:
	}
}

// pump copies r into the input queue until r fails, then closes the input.
func (s *hostSerial) pump(r io.Reader) {
	defer s.close()
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.rx <- append([]byte(nil), buf[:n]...)
		}
		if err != nil {
			return
		}
	}
}

func (s *hostSerial) close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// Closed is closed once the attached input has ended.
func (s *hostSerial) Closed() <-chan struct{} { return s.closed }

// attachStdin starts pumping f. When f is a terminal it is switched to raw
// mode so keys arrive one byte at a time; the returned func restores it.
func (s *hostSerial) attachStdin(f *os.File) (restore func(), err error) {
	restore = func() {}
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return restore, err
		}
		restore = func() { _ = term.Restore(fd, old) }
	}
	go s.pump(f)
	return restore, nil
}
