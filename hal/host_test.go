//go:build !tinygo

package hal

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func TestHostSerialPumpThenEOF(t *testing.T) {
	var out bytes.Buffer
	s := newHostSerial(&out)
	go s.pump(strings.NewReader("help\r"))

	var got []byte
	buf := make([]byte, 2)
	for {
		n, err := s.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
	}
	if string(got) != "help\r" {
		t.Fatalf("read %q; want %q", got, "help\r")
	}
	select {
	case <-s.Closed():
	default:
		t.Fatal("input not marked closed")
	}

	s.Write([]byte("ok"))
	if out.String() != "ok" {
		t.Fatalf("wrote %q; want \"ok\"", out.String())
	}
}

func TestHostSerialInject(t *testing.T) {
	s := newHostSerial(io.Discard)
	key := []byte("\x1b[A")
	s.inject(key)
	key[0] = 'x'
	s.inject(nil)

	buf := make([]byte, 8)
	n, err := s.Read(buf)
	if err != nil || string(buf[:n]) != "\x1b[A" {
		t.Fatalf("Read() = %q, %v; want the injected sequence", buf[:n], err)
	}
}

func TestHostTimeSync(t *testing.T) {
	ht := newHostTime()
	start := time.Unix(100, 0)
	tcs := []struct {
		at   time.Duration
		want uint64
	}{
		{at: 0, want: 1},
		{at: 0, want: 2},
		{at: 10 * time.Millisecond, want: 10},
		{at: 10*time.Millisecond + 500*time.Microsecond, want: 11},
		{at: 50 * time.Millisecond, want: 50},
	}
	for _, tc := range tcs {
		ht.sync(start.Add(tc.at))
		if got := <-ht.Ticks(); got != tc.want {
			t.Fatalf("sync(+%v) tick = %d; want %d", tc.at, got, tc.want)
		}
	}
}

func TestHostFramebufferPresent(t *testing.T) {
	fb := newHostFramebuffer(2, 1)
	fb.ClearRGB(255, 0, 0)

	snap := make([]byte, len(fb.Buffer()))
	if frame := fb.snapshotRGB565(snap); frame != 0 || snap[1] != 0 {
		t.Fatalf("before Present: frame %d, snapshot %x", frame, snap)
	}
	fb.Present()
	if frame := fb.snapshotRGB565(snap); frame != 1 || !bytes.Equal(snap, []byte{0x00, 0xf8, 0x00, 0xf8}) {
		t.Fatalf("after Present: frame %d, snapshot %x", frame, snap)
	}
}

func TestPixelRoundTrip(t *testing.T) {
	tcs := []struct{ r, g, b uint8 }{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{0, 255, 0},
	}
	for _, tc := range tcs {
		r, g, b := rgb888From565(rgb565(tc.r, tc.g, tc.b))
		if r != tc.r || g != tc.g || b != tc.b {
			t.Fatalf("rgb888From565(rgb565(%d,%d,%d)) = %d,%d,%d", tc.r, tc.g, tc.b, r, g, b)
		}
	}
}
