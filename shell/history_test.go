package shell

import (
	"bytes"
	"fmt"
	"io"
	"testing"
)

func addLines(h *History, lines ...string) {
	for _, l := range lines {
		h.AddLine([]byte(l))
	}
}

func spanString(h *History, s Span) string {
	return string(h.Append(nil, s))
}

func TestHistoryRecallPrevious(t *testing.T) {
	h := NewHistory(64)
	addLines(h, "one", "two", "three")
	for _, want := range []string{"three", "two", "one", "one"} {
		if got := spanString(h, h.RecallPrevious()); got != want {
			t.Fatalf("RecallPrevious() = %q; want %q", got, want)
		}
	}
}

func TestHistoryRecallNext(t *testing.T) {
	h := NewHistory(64)
	addLines(h, "one", "two", "three")
	if s := h.RecallNext(); !s.Empty() {
		t.Fatalf("RecallNext() without recall = %q; want empty", spanString(h, s))
	}
	h.RecallPrevious()
	h.RecallPrevious()
	h.RecallPrevious()
	for _, want := range []string{"two", "three"} {
		if got := spanString(h, h.RecallNext()); got != want {
			t.Fatalf("RecallNext() = %q; want %q", got, want)
		}
	}
	if s := h.RecallNext(); !s.Empty() {
		t.Fatalf("RecallNext() at newest = %q; want empty", spanString(h, s))
	}
	if got := spanString(h, h.Current()); got != "three" {
		t.Fatalf("Current() after boundary = %q; want three", got)
	}
}

func TestHistoryAddResetsRecall(t *testing.T) {
	h := NewHistory(64)
	addLines(h, "one", "two")
	h.RecallPrevious()
	h.RecallPrevious()
	if !h.Recalling() {
		t.Fatal("expected active recall")
	}
	h.AddLine([]byte("three"))
	if h.Recalling() {
		t.Fatal("AddLine did not reset recall")
	}
	if got := spanString(h, h.RecallPrevious()); got != "three" {
		t.Fatalf("RecallPrevious() = %q; want three", got)
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(16)
	if s := h.RecallPrevious(); !s.Empty() {
		t.Fatal("RecallPrevious on empty history returned a line")
	}
	if s := h.RecallNext(); !s.Empty() {
		t.Fatal("RecallNext on empty history returned a line")
	}
	if h.AddLine(nil) {
		t.Fatal("AddLine(empty) = true; want false")
	}
}

func TestHistoryOverflowDropsWholeLines(t *testing.T) {
	h := NewHistory(12)
	addLines(h, "aaaa", "bbbb") // 10 bytes
	addLines(h, "cc")           // needs 3, drops "aaaa\n"
	var buf bytes.Buffer
	h.WriteTo(&buf)
	if got := buf.String(); got != "bbbb\ncc\n" {
		t.Fatalf("stored = %q; want %q", got, "bbbb\ncc\n")
	}
	for _, want := range []string{"cc", "bbbb", "bbbb"} {
		if got := spanString(h, h.RecallPrevious()); got != want {
			t.Fatalf("RecallPrevious() = %q; want %q", got, want)
		}
	}
}

func TestHistoryOverflowCutsAtSeparator(t *testing.T) {
	tcs := []struct {
		size  int
		lines []string
		want  string
	}{
		{size: 6, lines: []string{"ab", "cd", "x"}, want: "cd\nx\n"},
		{size: 6, lines: []string{"ab", "cd", "xy"}, want: "cd\nxy\n"},
		{size: 8, lines: []string{"a", "b", "c", "d", "efg"}, want: "c\nd\nefg\n"},
		{size: 8, lines: []string{"abcdef", "g"}, want: "g\n"},
		{size: 8, lines: []string{"ab", "cdefgh"}, want: "cdefgh\n"},
	}
	for _, tc := range tcs {
		h := NewHistory(tc.size)
		addLines(h, tc.lines...)
		var buf bytes.Buffer
		h.WriteTo(&buf)
		if got := buf.String(); got != tc.want {
			t.Fatalf("AddLine(%q) into %d bytes: stored = %q; want %q", tc.lines, tc.size, got, tc.want)
		}
	}
}

func TestHistoryConcurrentWriteTo(t *testing.T) {
	h := NewHistory(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			h.WriteTo(io.Discard)
			h.Len()
		}
	}()
	for i := 0; i < 200; i++ {
		h.AddLine([]byte(fmt.Sprintf("echo %d", i)))
		h.RecallPrevious()
	}
	<-done
	if got := spanString(h, h.Current()); got != "echo 199" {
		t.Fatalf("Current() = %q; want %q", got, "echo 199")
	}
}

func TestHistoryRejects(t *testing.T) {
	h := NewHistory(8)
	if h.AddLine([]byte("12345678")) {
		t.Fatal("AddLine longer than store = true; want false")
	}
	if !h.AddLine([]byte("1234567")) {
		t.Fatal("AddLine that exactly fits = false; want true")
	}
	if h.AddLine([]byte("1234567")) {
		t.Fatal("AddLine of a repeated line = true; want false")
	}
	if h.Len() != 8 {
		t.Fatalf("Len() = %d; want 8", h.Len())
	}
}

func TestHistoryWrapAround(t *testing.T) {
	h := NewHistory(10)
	for _, l := range []string{"ab", "cd", "ef", "gh", "ij", "kl"} {
		h.AddLine([]byte(l))
	}
	for _, want := range []string{"kl", "ij", "gh", "gh"} {
		if got := spanString(h, h.RecallPrevious()); got != want {
			t.Fatalf("RecallPrevious() = %q; want %q", got, want)
		}
	}
}
