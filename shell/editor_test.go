package shell

import (
	"math/rand"
	"testing"
)

func (e *Editor) checkInvariant(t *testing.T) {
	t.Helper()
	if e.cursor < 0 || e.cursor > e.used || e.used > LineCapacity {
		t.Fatalf("invariant broken: cursor=%d used=%d cap=%d", e.cursor, e.used, LineCapacity)
	}
}

func TestEditorEditing(t *testing.T) {
	var e Editor
	for _, c := range []byte("helo") {
		e.Insert(c)
	}
	e.StepLeft()
	if !e.Insert('l') {
		t.Fatal("Insert in the middle failed")
	}
	if got := string(e.Bytes()); got != "hello" {
		t.Fatalf("Bytes() = %q; want hello", got)
	}
	if e.Cursor() != 4 || string(e.Tail()) != "o" {
		t.Fatalf("cursor=%d tail=%q; want 4, \"o\"", e.Cursor(), e.Tail())
	}

	if !e.Delete() || string(e.Bytes()) != "hell" {
		t.Fatalf("Delete() -> %q; want hell", e.Bytes())
	}
	if e.Delete() {
		t.Fatal("Delete() at end = true; want false")
	}
	e.StepLeft()
	e.StepLeft()
	if !e.Backspace() || string(e.Bytes()) != "hll" || e.Cursor() != 1 {
		t.Fatalf("Backspace() -> %q cursor=%d; want hll, 1", e.Bytes(), e.Cursor())
	}
	e.checkInvariant(t)
}

func TestEditorBoundaries(t *testing.T) {
	var e Editor
	if e.Backspace() || e.Delete() || e.StepLeft() || e.StepRight() {
		t.Fatal("mutation on empty editor")
	}
	e.Insert('a')
	used, cur := e.Len(), e.Cursor()
	if e.Delete() || e.StepRight() {
		t.Fatal("Delete/StepRight at end should be no-ops")
	}
	if e.Len() != used || e.Cursor() != cur {
		t.Fatalf("state changed at end boundary: len=%d cursor=%d", e.Len(), e.Cursor())
	}
	e.StepLeft()
	if e.Backspace() || e.StepLeft() {
		t.Fatal("Backspace/StepLeft at base should be no-ops")
	}
	if e.Len() != 1 || e.Cursor() != 0 {
		t.Fatalf("state changed at base boundary: len=%d cursor=%d", e.Len(), e.Cursor())
	}
}

func TestEditorFull(t *testing.T) {
	var e Editor
	for i := 0; i < LineCapacity; i++ {
		if !e.Insert('x') {
			t.Fatalf("Insert #%d failed", i)
		}
	}
	if !e.Full() || e.Insert('y') {
		t.Fatal("expected full editor to reject insert")
	}
	e.StepLeft()
	if e.Insert('y') {
		t.Fatal("expected full editor to reject insert in the middle")
	}
	e.checkInvariant(t)
}

func TestEditorSetAndClear(t *testing.T) {
	var e Editor
	e.Set([]byte("recall"))
	if string(e.Bytes()) != "recall" || !e.AtEnd() {
		t.Fatalf("Set -> %q atEnd=%v", e.Bytes(), e.AtEnd())
	}
	e.Clear()
	if !e.Empty() || e.Cursor() != 0 {
		t.Fatal("Clear did not reset state")
	}
	long := make([]byte, LineCapacity+10)
	e.Set(long)
	if e.Len() != LineCapacity {
		t.Fatalf("Set(oversized) len = %d; want %d", e.Len(), LineCapacity)
	}
}

func TestEditorRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var e Editor
	for i := 0; i < 20000; i++ {
		switch rng.Intn(5) {
		case 0, 1:
			e.Insert(byte('a' + rng.Intn(26)))
		case 2:
			e.Delete()
		case 3:
			e.Backspace()
		case 4:
			if rng.Intn(2) == 0 {
				e.StepLeft()
			} else {
				e.StepRight()
			}
		}
		e.checkInvariant(t)
	}
}
