package shell

import (
	"bytes"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tcs := []struct {
		in   string
		want Role
	}{
		{in: "-v", want: RoleFlag},
		{in: "-all", want: RoleFlag},
		{in: "--all", want: RoleOption},
		{in: "-1", want: RolePositional},
		{in: "--", want: RolePositional},
		{in: "-", want: RolePositional},
		{in: "value", want: RolePositional},
	}
	for _, tc := range tcs {
		if got := Classify(tc.in); got != tc.want {
			t.Fatalf("Classify(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseNumbers(t *testing.T) {
	u32 := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{in: "42", want: 42, ok: true},
		{in: "0x2A", want: 42, ok: true},
		{in: "0xffffffff", want: 0xffffffff, ok: true},
		{in: "0x", want: 0, ok: false},
		{in: "4294967296", want: 0, ok: false},
		{in: "-1", want: 0, ok: false},
		{in: "12abc", want: 0, ok: false},
	}
	for _, tc := range u32 {
		got, ok := ParseUint32(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("ParseUint32(%q) = %d,%v; want %d,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}

	i32 := []struct {
		in   string
		want int32
		ok   bool
	}{
		{in: "-42", want: -42, ok: true},
		{in: "+7", want: 7, ok: true},
		{in: "-0x10", want: -16, ok: true},
		{in: "-2147483648", want: -2147483648, ok: true},
		{in: "2147483648", want: 0, ok: false},
		{in: "--1", want: 0, ok: false},
		{in: "", want: 0, ok: false},
	}
	for _, tc := range i32 {
		got, ok := ParseInt32(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("ParseInt32(%q) = %d,%v; want %d,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}

	if f, ok := (Value{Role: RolePositional, Raw: "2.5"}).Float32(); !ok || f != 2.5 {
		t.Fatalf("Float32(2.5) = %v,%v", f, ok)
	}
}

func TestValueDefault(t *testing.T) {
	v := Value{Default: "10"}
	if v.Exists() {
		t.Fatal("unbound value reports Exists")
	}
	if n, ok := v.Uint32(); !ok || n != 10 {
		t.Fatalf("Uint32() of default = %d,%v; want 10,true", n, ok)
	}
}

func TestBindArgs(t *testing.T) {
	decl := []Arg{{Name: "addr", Type: TypeNum}, {Name: "label", Type: TypeStr}}
	tcs := []struct {
		name string
		toks []string
		ok   bool
		msg  string
	}{
		{name: "ok", toks: []string{"0x10", "x"}, ok: true},
		{name: "extra tokens", toks: []string{"1", "x", "y"}, ok: true},
		{name: "too few", toks: []string{"1"}, ok: false, msg: "not enough arguments (expected 2, got 1)"},
		{name: "empty", toks: []string{"", "x"}, ok: false, msg: "expected non-empty positional argument 0"},
		{name: "not a number", toks: []string{"abc", "x"}, ok: false, msg: "expects a number"},
		{name: "float accepted", toks: []string{"1.5", "x"}, ok: true},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var w bytes.Buffer
			var dst [MaxArgs]Value
			vals, ok := bindArgs(&w, decl, tc.toks, dst[:])
			if ok != tc.ok {
				t.Fatalf("bindArgs(%q) = %v; want %v (out %q)", tc.toks, ok, tc.ok, w.String())
			}
			if !ok && !strings.Contains(w.String(), tc.msg) {
				t.Fatalf("bindArgs(%q) printed %q; want %q", tc.toks, w.String(), tc.msg)
			}
			if ok && len(vals) != len(decl) {
				t.Fatalf("bound %d values; want %d", len(vals), len(decl))
			}
		})
	}
}

func TestBindArgsOptional(t *testing.T) {
	decl := []Arg{{Name: "addr", Type: TypeNum}, {Name: "size", Type: TypeNum, Default: "16"}}
	var w bytes.Buffer
	var dst [MaxArgs]Value
	vals, ok := bindArgs(&w, decl, []string{"4"}, dst[:])
	if !ok || len(vals) != 1 {
		t.Fatalf("bindArgs with optional omitted = %d values, %v (%q)", len(vals), ok, w.String())
	}
	if _, ok := bindArgs(&w, decl, nil, dst[:]); ok {
		t.Fatal("bindArgs without the required argument succeeded")
	}
	if !strings.Contains(w.String(), "expected 1, got 0") {
		t.Fatalf("output = %q; want required count", w.String())
	}
}

func TestSignature(t *testing.T) {
	got := Signature([]Arg{{Name: "period_ms", Type: TypeNum}, {Name: "msg"}, {Name: "n", Type: TypeNum, Default: "1"}})
	if want := "<period_ms:num> <msg:str> [<n:num>]"; got != want {
		t.Fatalf("Signature = %q; want %q", got, want)
	}
}
