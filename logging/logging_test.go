package logging

import (
	"strings"
	"testing"
	"time"
)

type lineSink struct {
	lines []string
}

func (s *lineSink) WriteLineString(line string) { s.lines = append(s.lines, line) }

func newTestLogger(cfg Config) (*Logger, *lineSink) {
	sink := &lineSink{}
	l := New(sink, cfg)
	l.SetClock(func() time.Duration { return 1500 * time.Millisecond })
	return l, sink
}

func TestHeaderFormat(t *testing.T) {
	l, sink := newTestLogger(Config{Enabled: true, Level: LevelDebug, Header: true})
	l.Module("shell", LevelNotSet).Infof("hello %d", 7)

	if len(sink.lines) != 1 {
		t.Fatalf("got %d lines; want 1", len(sink.lines))
	}
	if want := "1.500|INF|shell|hello 7"; sink.lines[0] != want {
		t.Fatalf("line = %q; want %q", sink.lines[0], want)
	}
}

func TestColorHeader(t *testing.T) {
	l, sink := newTestLogger(Config{Enabled: true, Level: LevelDebug, Header: true, Color: true})
	l.Module("m", LevelNotSet).Errorf("boom")
	if !strings.Contains(sink.lines[0], "\x1b[31mERR\x1b[39m") {
		t.Fatalf("line = %q; want colored ERR tag", sink.lines[0])
	}
}

func TestLevelFiltering(t *testing.T) {
	tcs := []struct {
		name   string
		global Level
		module Level
		level  Level
		want   bool
	}{
		{name: "below global", global: LevelInfo, level: LevelDebug, want: false},
		{name: "at global", global: LevelInfo, level: LevelInfo, want: true},
		{name: "module override lower", global: LevelError, module: LevelDebug, level: LevelDebug, want: true},
		{name: "module override higher", global: LevelDebug, module: LevelWarn, level: LevelInfo, want: false},
		{name: "off", global: LevelOff, level: LevelError, want: false},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			l, sink := newTestLogger(Config{Enabled: true, Level: tc.global})
			l.Module("m", tc.module).Logf(tc.level, "x")
			if got := len(sink.lines) == 1; got != tc.want {
				t.Fatalf("logged = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestDisabled(t *testing.T) {
	l, sink := newTestLogger(Config{Enabled: false, Level: LevelDebug})
	m := l.Module("m", LevelNotSet)
	m.Errorf("dropped")
	l.Update(func(c *Config) { c.Enabled = true })
	m.Errorf("kept")
	if len(sink.lines) != 1 || sink.lines[0] != "kept" {
		t.Fatalf("lines = %q; want [\"kept\"]", sink.lines)
	}
}

func TestNilModule(t *testing.T) {
	var m *Module
	m.Infof("no panic")
}

func TestParseLevel(t *testing.T) {
	tcs := []struct {
		in   string
		want Level
		ok   bool
	}{
		{in: "debug", want: LevelDebug, ok: true},
		{in: "WARN", want: LevelWarn, ok: true},
		{in: "err", want: LevelError, ok: true},
		{in: "loud", want: LevelNotSet, ok: false},
	}
	for _, tc := range tcs {
		got, ok := ParseLevel(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = %v,%v; want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
