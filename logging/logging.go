// Package logging is a small levelled logger with named modules.
//
// Lines are formatted as "uptime|LVL|module|message" and handed to a Sink one
// line at a time. hal.Logger satisfies Sink.
package logging

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Level orders log severities. LevelNotSet on a Module defers to the Logger.
type Level uint8

const (
	LevelNotSet Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelNotSet:
		return "notset"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelOff:
		return "off"
	default:
		return "unknown"
	}
}

// ParseLevel accepts the names printed by Level.String plus the short tags.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "debug", "dbg":
		return LevelDebug, true
	case "info", "inf":
		return LevelInfo, true
	case "warn", "warning", "wrn":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	case "off", "none":
		return LevelOff, true
	}
	return LevelNotSet, false
}

var levelTags = [...]struct {
	tag   string
	color string
}{
	LevelNotSet: {"???", ""},
	LevelDebug:  {"DBG", "\x1b[35m"},
	LevelInfo:   {"INF", "\x1b[39m"},
	LevelWarn:   {"WRN", "\x1b[33m"},
	LevelError:  {"ERR", "\x1b[31m"},
	LevelOff:    {"???", ""},
}

// Sink receives finished lines without a trailing newline.
type Sink interface {
	WriteLineString(s string)
}

// Config is the runtime-adjustable logger state.
type Config struct {
	Enabled bool
	Level   Level
	Color   bool
	Header  bool
}

func DefaultConfig() Config {
	return Config{Enabled: true, Level: LevelInfo, Color: true, Header: true}
}

// Logger formats and forwards lines. It is safe for concurrent use.
type Logger struct {
	mu   sync.Mutex
	cfg  Config
	sink Sink
	now  func() time.Duration
	buf  []byte
}

// New returns a logger writing to sink. A nil sink discards everything.
func New(sink Sink, cfg Config) *Logger {
	start := time.Now()
	return &Logger{
		cfg:  cfg,
		sink: sink,
		now:  func() time.Duration { return time.Since(start) },
	}
}

// SetClock replaces the uptime source used in line headers.
func (l *Logger) SetClock(now func() time.Duration) {
	if now == nil {
		return
	}
	l.mu.Lock()
	l.now = now
	l.mu.Unlock()
}

func (l *Logger) Config() Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

func (l *Logger) SetConfig(cfg Config) {
	l.mu.Lock()
	l.cfg = cfg
	l.mu.Unlock()
}

// Update applies fn to the current config under the logger lock.
func (l *Logger) Update(fn func(*Config)) {
	l.mu.Lock()
	fn(&l.cfg)
	l.mu.Unlock()
}

// Module returns a named source. level overrides the logger level unless it
// is LevelNotSet.
func (l *Logger) Module(name string, level Level) *Module {
	return &Module{l: l, name: name, level: level}
}

func (l *Logger) log(m *Module, level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.cfg.Enabled || l.sink == nil {
		return
	}
	threshold := l.cfg.Level
	if m.level != LevelNotSet {
		threshold = m.level
	}
	if level < threshold || level >= LevelOff {
		return
	}

	b := l.buf[:0]
	if l.cfg.Header {
		up := l.now()
		b = fmt.Appendf(b, "%d.%03d|", int64(up/time.Second), int64(up%time.Second/time.Millisecond))
		tag := levelTags[level]
		if l.cfg.Color {
			b = append(b, tag.color...)
		}
		b = append(b, tag.tag...)
		if l.cfg.Color {
			b = append(b, "\x1b[39m"...)
		}
		b = append(b, '|')
		b = append(b, m.name...)
		b = append(b, '|')
	}
	b = fmt.Appendf(b, format, args...)
	l.buf = b
	l.sink.WriteLineString(string(b))
}

// Module is a named log source.
type Module struct {
	l     *Logger
	name  string
	level Level
}

func (m *Module) Name() string { return m.name }

// SetLevel changes the module override. It is not synchronized with logging
// calls and is meant for startup.
func (m *Module) SetLevel(level Level) { m.level = level }

func (m *Module) Logf(level Level, format string, args ...any) {
	if m == nil {
		return
	}
	m.l.log(m, level, format, args...)
}

func (m *Module) Debugf(format string, args ...any) { m.Logf(LevelDebug, format, args...) }
func (m *Module) Infof(format string, args ...any)  { m.Logf(LevelInfo, format, args...) }
func (m *Module) Warnf(format string, args ...any)  { m.Logf(LevelWarn, format, args...) }
func (m *Module) Errorf(format string, args ...any) { m.Logf(LevelError, format, args...) }
