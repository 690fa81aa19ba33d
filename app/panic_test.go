package app

import (
	"errors"
	"testing"

	"termsh/rtos/kernel"
)

func TestTakeRunes(t *testing.T) {
	tcs := []struct {
		in         string
		n          int16
		head, tail string
	}{
		{in: "abcdef", n: 4, head: "abcd", tail: "ef"},
		{in: "abc", n: 4, head: "abc", tail: ""},
		{in: "héllo", n: 2, head: "hé", tail: "llo"},
		{in: "abc", n: 0, head: "", tail: "abc"},
	}
	for _, tc := range tcs {
		head, tail := takeRunes(tc.in, tc.n)
		if head != tc.head || tail != tc.tail {
			t.Fatalf("takeRunes(%q, %d) = %q, %q; want %q, %q", tc.in, tc.n, head, tail, tc.head, tc.tail)
		}
	}
}

func TestPanicLines(t *testing.T) {
	lines := panicLines(kernel.PanicInfo{TaskID: 3, Value: errors.New("boom")})
	want := []string{"termsh panic:", "task: 3", "panic: boom", "stack: unavailable"}
	if len(lines) != len(want) {
		t.Fatalf("panicLines() = %q; want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("panicLines()[%d] = %q; want %q", i, lines[i], want[i])
		}
	}
}
