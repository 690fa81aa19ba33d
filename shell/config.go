package shell

import (
	"time"

	"termsh/logging"
)

// Config controls presentation and limits of a Shell.
type Config struct {
	Prompt        string
	Banner        string
	Color         bool
	CRLF          bool // translate "\n" to "\r\n" on output
	StatusLine    bool // print OK / FAIL after each command
	EscapeTimeout time.Duration
	HistorySize   int
}

func DefaultConfig() Config {
	return Config{
		Prompt:        "> ",
		Color:         true,
		CRLF:          true,
		StatusLine:    true,
		EscapeTimeout: DefaultEscapeTimeout,
		HistorySize:   DefaultHistorySize,
	}
}

// Option customizes New.
type Option func(*Shell)

func WithConfig(cfg Config) Option {
	return func(s *Shell) { s.cfg = cfg }
}

// WithClock replaces the monotonic clock used for escape timeouts.
func WithClock(c Clock) Option {
	return func(s *Shell) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(m *logging.Module) Option {
	return func(s *Shell) { s.log = m }
}

// WithHistory shares an existing history store.
func WithHistory(h *History) Option {
	return func(s *Shell) { s.hist = h }
}
