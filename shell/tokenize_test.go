package shell

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{}},
		{name: "blank", in: "   \t ", want: []string{}},
		{name: "words", in: "echo hi there", want: []string{"echo", "hi", "there"}},
		{name: "collapse", in: "  a   b\t\tc  ", want: []string{"a", "b", "c"}},
		{name: "double quotes", in: `echo "hello world" x`, want: []string{"echo", "hello world", "x"}},
		{name: "single quotes", in: `echo 'a "b" c'`, want: []string{"echo", `a "b" c`}},
		{name: "empty quoted", in: `a "" b`, want: []string{"a", "", "b"}},
		{name: "glued to quote", in: `pre"mid dle"post`, want: []string{"pre", "mid dle", "post"}},
		{name: "tab inside quotes", in: "'a\tb'", want: []string{"a\tb"}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var buf [MaxArgs]string
			got, ok := Tokenize(tc.in, buf[:])
			if !ok {
				t.Fatalf("Tokenize(%q) failed; want %q", tc.in, tc.want)
			}
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokenize(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTokenizeFailures(t *testing.T) {
	tcs := []struct {
		name string
		in   string
		cap  int
		err  error
	}{
		{name: "unmatched double", in: `echo "abc`, cap: 4, err: errUnterminatedQuote},
		{name: "unmatched single", in: `'`, cap: 4, err: errUnterminatedQuote},
		{name: "unmatched after empty", in: `"" "`, cap: 4, err: errUnterminatedQuote},
		{name: "overflow", in: "a b c", cap: 2, err: errTooManyArgs},
		{name: "overflow quoted", in: `a "b"`, cap: 1, err: errTooManyArgs},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out := make([]string, 0, tc.cap)
			if _, err := tokenize(tc.in, out); err != tc.err {
				t.Fatalf("tokenize(%q) err = %v; want %v", tc.in, err, tc.err)
			}
			if _, ok := Tokenize(tc.in, out); ok {
				t.Fatalf("Tokenize(%q) = ok; want failure", tc.in)
			}
		})
	}
}

func TestTokenizeExactCapacity(t *testing.T) {
	out := make([]string, 0, 3)
	got, ok := Tokenize("a b c", out)
	if !ok || len(got) != 3 {
		t.Fatalf("Tokenize at capacity = %q,%v; want 3 tokens", got, ok)
	}
}
