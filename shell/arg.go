package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ArgType is the declared semantic type of a positional argument.
type ArgType uint8

const (
	TypeStr ArgType = iota
	TypeNum
)

func (t ArgType) String() string {
	if t == TypeNum {
		return "num"
	}
	return "str"
}

// Arg declares one positional argument of a command.
type Arg struct {
	Name        string
	Type        ArgType
	Description string
	Default     string
}

// Role says how a token was bound.
type Role uint8

const (
	RoleNone Role = iota
	RolePositional
	RoleFlag   // -x
	RoleOption // --name
)

func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

// Classify reports whether tok looks like a flag (-x), an option (--name)
// or a plain positional value. Negative numbers stay positional.
func Classify(tok string) Role {
	switch {
	case len(tok) >= 3 && tok[0] == '-' && tok[1] == '-' && isAlpha(tok[2]):
		return RoleOption
	case len(tok) >= 2 && tok[0] == '-' && isAlpha(tok[1]):
		return RoleFlag
	}
	return RolePositional
}

// Value is a positional argument bound to a token of the current line.
type Value struct {
	Role    Role
	Type    ArgType
	Raw     string
	Default string
}

// Exists reports whether the value was bound to a token.
func (v Value) Exists() bool { return v.Role != RoleNone }

// String returns the bound text, or the declared default when unbound.
func (v Value) String() string {
	if v.Role == RoleNone {
		return v.Default
	}
	return v.Raw
}

func (v Value) Uint32() (uint32, bool) { return ParseUint32(v.String()) }
func (v Value) Int32() (int32, bool)   { return ParseInt32(v.String()) }

func (v Value) Float32() (float32, bool) {
	f, err := strconv.ParseFloat(v.String(), 32)
	return float32(f), err == nil
}

func (v Value) Float64() (float64, bool) { return ParseFloat(v.String()) }

func splitBase(s string) (string, int) {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:], 16
	}
	return s, 10
}

// ParseUint32 parses decimal or 0x-prefixed hex.
func ParseUint32(s string) (uint32, bool) {
	digits, base := splitBase(s)
	v, err := strconv.ParseUint(digits, base, 32)
	return uint32(v), err == nil
}

// ParseInt32 parses an optionally signed decimal or 0x-prefixed hex.
func ParseInt32(s string) (int32, bool) {
	neg := false
	body := s
	if len(body) > 0 && (body[0] == '-' || body[0] == '+') {
		neg = body[0] == '-'
		body = body[1:]
	}
	digits, base := splitBase(body)
	if digits == "" || digits[0] == '-' || digits[0] == '+' {
		return 0, false
	}
	v, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	if v < -1<<31 || v > 1<<31-1 {
		return 0, false
	}
	return int32(v), true
}

func ParseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func isNumber(s string) bool {
	if _, ok := ParseInt32(s); ok {
		return true
	}
	if _, ok := ParseUint32(s); ok {
		return true
	}
	_, ok := ParseFloat(s)
	return ok
}

// Signature renders the declared positionals as "<name:type> ...", with
// optional ones in brackets.
func Signature(args []Arg) string {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		if a.Default != "" {
			fmt.Fprintf(&b, "[<%s:%s>]", a.Name, a.Type)
			continue
		}
		fmt.Fprintf(&b, "<%s:%s>", a.Name, a.Type)
	}
	return b.String()
}

// bindArgs checks toks against decl and fills dst. Declared arguments with a
// default are optional and must come last. Problems are reported on w.
func bindArgs(w io.Writer, decl []Arg, toks []string, dst []Value) ([]Value, bool) {
	dst = dst[:0]
	required := 0
	for _, a := range decl {
		if a.Default == "" {
			required++
		}
	}
	if len(toks) < required {
		fmt.Fprintf(w, "Error: not enough arguments (expected %d, got %d)\n", required, len(toks))
		return dst, false
	}
	for i, a := range decl {
		if i >= len(toks) {
			break
		}
		tok := toks[i]
		if tok == "" {
			fmt.Fprintf(w, "Error: expected non-empty positional argument %d\n", i)
			return dst, false
		}
		if a.Type == TypeNum && !isNumber(tok) {
			fmt.Fprintf(w, "Error: argument %d <%s> expects a number, got %q\n", i, a.Name, tok)
			return dst, false
		}
		dst = append(dst, Value{Role: RolePositional, Type: a.Type, Raw: tok, Default: a.Default})
	}
	return dst, true
}
