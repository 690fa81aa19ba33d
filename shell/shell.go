// Package shell implements a line-edited command shell over a byte stream.
//
// Bytes go in through PutChar (or Write); the editor, escape interpreter and
// history handle keystrokes, and a committed line is tokenized, resolved in a
// Registry and executed. All output goes through a single Output.
package shell

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"termsh/logging"
)

// Shell is a single interactive session. PutChar and Write must be called
// from one goroutine; ExecuteLine may be called concurrently.
type Shell struct {
	cfg   Config
	reg   *Registry
	out   *Output
	clock Clock
	log   *logging.Module

	ed     Editor
	esc    escMachine
	hist   *History
	prevCR bool

	lastStatus atomic.Int32
	argv       [MaxArgs]string
	line       [LineCapacity]byte
}

// New creates a shell writing to out and resolving commands in reg.
func New(out io.Writer, reg *Registry, opts ...Option) *Shell {
	s := &Shell{
		cfg:   DefaultConfig(),
		reg:   reg,
		clock: monoClock{start: time.Now()},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.EscapeTimeout <= 0 {
		s.cfg.EscapeTimeout = DefaultEscapeTimeout
	}
	if s.hist == nil {
		s.hist = NewHistory(s.cfg.HistorySize)
	}
	if s.reg == nil {
		s.reg = NewRegistry()
	}
	s.esc.timeout = s.cfg.EscapeTimeout
	s.out = NewOutput(out, s.cfg.CRLF)
	return s
}

func (s *Shell) Config() Config      { return s.cfg }
func (s *Shell) Registry() *Registry { return s.reg }
func (s *Shell) History() *History   { return s.hist }
func (s *Shell) Output() *Output     { return s.out }
func (s *Shell) Editor() *Editor     { return &s.ed }
func (s *Shell) LastStatus() Status  { return Status(s.lastStatus.Load()) }
func (s *Shell) setStatus(st Status) { s.lastStatus.Store(int32(st)) }

// Start prints the banner and the first prompt.
func (s *Shell) Start() {
	if s.cfg.Banner != "" {
		s.out.WriteString(s.cfg.Banner)
		s.out.EnsureNewline()
	}
	s.prompt()
}

// Write feeds input bytes to PutChar. It never fails.
func (s *Shell) Write(p []byte) (int, error) {
	for _, c := range p {
		s.PutChar(c)
	}
	return len(p), nil
}

// PutChar handles one input byte. It reports whether the byte completed an
// action: an edit, a cursor or history move, or a committed line.
func (s *Shell) PutChar(c byte) bool {
	afterCR := s.prevCR
	s.prevCR = c == '\r'

	if consumed, act := s.esc.feed(c, s.clock.Elapsed()); consumed {
		if act == escActNone {
			return false
		}
		return s.apply(act)
	}

	switch {
	case c == '\r':
		s.commit()
		return true
	case c == '\n':
		if afterCR {
			return false
		}
		s.commit()
		return true
	case c == '\b' || c == 0x7f:
		return s.backspace()
	case c == 0x03:
		s.cancel()
		return true
	case c == '\t':
		return s.complete()
	case c == 0x0c:
		s.out.WriteString(ansiClearAll)
		s.redraw()
		return true
	case c >= 0x20 && c <= 0x7e:
		return s.insert(c)
	}
	return false
}

func (s *Shell) apply(act escAction) bool {
	switch act {
	case escActUp:
		return s.recall(s.hist.RecallPrevious())
	case escActDown:
		sp := s.hist.RecallNext()
		if sp.Empty() {
			s.hist.Reset()
			s.ed.Clear()
			s.redraw()
			return true
		}
		return s.recall(sp)
	case escActRight:
		if !s.ed.StepRight() {
			return false
		}
		s.out.Write(s.ed.Bytes()[s.ed.Cursor()-1 : s.ed.Cursor()])
		return true
	case escActLeft:
		if !s.ed.StepLeft() {
			return false
		}
		s.out.WriteString("\b")
		return true
	case escActHome:
		n := 0
		for s.ed.StepLeft() {
			n++
		}
		s.out.WriteRepeat('\b', n)
		return n > 0
	case escActDelete:
		if !s.ed.Delete() {
			return false
		}
		tail := s.ed.Tail()
		s.out.Write(tail)
		s.out.WriteString(" ")
		s.out.WriteRepeat('\b', len(tail)+1)
		return true
	}
	return false
}

func (s *Shell) recall(sp Span) bool {
	if sp.Empty() {
		return false
	}
	var buf [LineCapacity]byte
	s.ed.Set(s.hist.Append(buf[:0], sp))
	s.redraw()
	return true
}

func (s *Shell) insert(c byte) bool {
	if !s.ed.Insert(c) {
		return false
	}
	if s.ed.AtEnd() {
		s.out.Write([]byte{c})
		return true
	}
	// Reprint from the inserted byte and walk back over the tail.
	tail := s.ed.Tail()
	s.out.Write(s.ed.Bytes()[s.ed.Cursor()-1:])
	s.out.WriteRepeat('\b', len(tail))
	return true
}

func (s *Shell) backspace() bool {
	if !s.ed.Backspace() {
		return false
	}
	tail := s.ed.Tail()
	s.out.WriteString("\b")
	s.out.Write(tail)
	s.out.WriteString(" ")
	s.out.WriteRepeat('\b', len(tail)+1)
	return true
}

func (s *Shell) cancel() {
	s.out.WriteString("^C\n")
	s.ed.Clear()
	s.hist.Reset()
	s.prompt()
}

func (s *Shell) commit() {
	s.out.WriteString("\n")
	n := copy(s.line[:], s.ed.Bytes())
	s.ed.Clear()
	if n > 0 {
		s.hist.AddLine(s.line[:n])
	} else {
		s.hist.Reset()
	}
	line := string(s.line[:n])
	s.log.Debugf("line %q", line)
	s.execute(line, s.argv[:])
	s.prompt()
}

// ExecuteLine tokenizes, resolves and runs line as if it had been typed,
// without touching the editor or history. It is safe to call from another
// goroutine while the interactive path is in use.
func (s *Shell) ExecuteLine(line string) Status {
	var argv [MaxArgs]string
	return s.execute(line, argv[:])
}

func (s *Shell) execute(line string, argv []string) Status {
	toks, err := tokenize(line, argv)
	if err != nil {
		s.log.Infof("parse %q: %v", line, err)
		s.errorf("parse error: %v\n", err)
		s.setStatus(StatusBadArg)
		return StatusBadArg
	}
	if len(toks) == 0 {
		return s.LastStatus()
	}
	cmd, rest := s.reg.Resolve(toks)
	if cmd == nil {
		s.log.Infof("unknown command %q", toks[0])
		s.errorf("command not found: %s\n", toks[0])
		s.setStatus(StatusUnknownCmd)
		return StatusUnknownCmd
	}
	return s.Execute(cmd, rest)
}

// Execute binds args to cmd's positionals, runs it and prints the status line.
func (s *Shell) Execute(cmd *Command, args []string) Status {
	var st Status
	var vals [MaxArgs]Value
	switch {
	case cmd.Fn == nil:
		s.errorf("%s: command has no method\n", cmd.Path())
		st = StatusUnexpected
	default:
		bound, ok := bindArgs(s.out, cmd.Args, args, vals[:])
		if !ok {
			st = StatusBadArg
			break
		}
		st = cmd.Fn(&Ctx{Shell: s, Cmd: cmd, Args: args, Values: bound, out: s.out})
	}
	s.log.Debugf("%s -> %v", cmd.Path(), st)
	s.printStatus(st)
	s.setStatus(st)
	return st
}

func (s *Shell) printStatus(st Status) {
	if !s.cfg.StatusLine || st == StatusOKQuiet {
		return
	}
	s.out.EnsureNewline()
	switch {
	case !st.Failed():
		s.colorf(ansiGreen, "OK")
	case st == StatusFail:
		s.colorf(ansiRed, "FAIL")
	default:
		s.colorf(ansiRed, fmt.Sprintf("FAIL: %d", int(st)))
	}
	s.out.WriteString("\n")
}

func (s *Shell) colorf(color, text string) {
	if s.cfg.Color {
		s.out.WriteString(color + text + ansiReset)
		return
	}
	s.out.WriteString(text)
}

func (s *Shell) errorf(format string, args ...any) {
	s.out.EnsureNewline()
	s.colorf(ansiRed, fmt.Sprintf(format, args...))
}

func (s *Shell) writePrompt() {
	color := ansiGreen
	if s.LastStatus().Failed() {
		color = ansiRed
	}
	s.colorf(color, s.cfg.Prompt)
}

// prompt starts a fresh input line.
func (s *Shell) prompt() {
	s.out.EnsureNewline()
	s.writePrompt()
}

// redraw repaints the prompt and the whole line, leaving the cursor where
// the editor has it.
func (s *Shell) redraw() {
	s.out.WriteString(ansiClearLine)
	s.writePrompt()
	s.out.Write(s.ed.Bytes())
	s.out.WriteRepeat('\b', len(s.ed.Tail()))
}

// Ctx is passed to a running command.
type Ctx struct {
	Shell  *Shell
	Cmd    *Command
	Args   []string // tokens after the command path
	Values []Value  // positionals bound from Args
	out    *Output
}

func (c *Ctx) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c *Ctx) Print(s string) { c.out.WriteString(s) }

func (c *Ctx) Printf(format string, args ...any) { c.out.Printf(format, args...) }

// Arg returns positional i, or an unbound value carrying the declared default.
func (c *Ctx) Arg(i int) Value {
	if i >= 0 && i < len(c.Values) {
		return c.Values[i]
	}
	v := Value{}
	if c.Cmd != nil && i >= 0 && i < len(c.Cmd.Args) {
		v.Type = c.Cmd.Args[i].Type
		v.Default = c.Cmd.Args[i].Default
	}
	return v
}

// Flag reports whether "-name" or "--name" appears among the arguments.
func (c *Ctx) Flag(name string) bool {
	for _, a := range c.Args {
		switch Classify(a) {
		case RoleFlag:
			if a[1:] == name {
				return true
			}
		case RoleOption:
			if a[2:] == name {
				return true
			}
		}
	}
	return false
}
