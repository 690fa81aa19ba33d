package shell

import "time"

// DefaultEscapeTimeout bounds an escape burst measured from the ESC byte.
const DefaultEscapeTimeout = 2 * time.Millisecond

// Clock reports monotonic time since an arbitrary epoch.
type Clock interface {
	Elapsed() time.Duration
}

type monoClock struct{ start time.Time }

func (c monoClock) Elapsed() time.Duration { return time.Since(c.start) }

type escState int8

const (
	escIdle escState = iota
	escEscaped
	escDelimited
	escIntermediate
	escFinished
)

type escAction uint8

const (
	escActNone escAction = iota
	escActUp
	escActDown
	escActRight
	escActLeft
	escActHome
	escActDelete
)

// escMachine recognizes CSI cursor keys, Home and Delete one byte at a time.
type escMachine struct {
	state   escState
	start   time.Duration
	timeout time.Duration
}

func (m *escMachine) active() bool { return m.state != escIdle }

// feed advances the machine. consumed is false when c must be treated as
// ordinary input: no sequence is active, the burst timed out, or c does not
// continue the sequence.
func (m *escMachine) feed(c byte, now time.Duration) (consumed bool, act escAction) {
	if c == 0x1b {
		m.state = escEscaped
		m.start = now
		return true, escActNone
	}
	if m.state == escIdle {
		return false, escActNone
	}
	if now-m.start > m.timeout {
		m.state = escIdle
		return false, escActNone
	}
	if c == 0x7f {
		m.state = escIdle
		return true, escActDelete
	}

	switch m.state {
	case escEscaped:
		if c == '[' {
			m.state = escDelimited
			return true, escActNone
		}
	case escDelimited, escIntermediate, escFinished:
		if consumed, act = m.delimited(c); consumed {
			if m.state == escFinished {
				m.state = escIdle
			}
			return consumed, act
		}
	}
	// Abandoned: bytes already consumed stay consumed.
	m.state = escIdle
	return false, escActNone
}

func (m *escMachine) delimited(c byte) (bool, escAction) {
	switch c {
	case '3':
		m.state = escIntermediate
		return true, escActNone
	case '~':
		if m.state == escIntermediate || m.state == escFinished {
			m.state = escFinished
			return true, escActDelete
		}
		return false, escActNone
	case 'H':
		m.state = escFinished
		return true, escActHome
	case 'A':
		m.state = escFinished
		return true, escActUp
	case 'B':
		m.state = escFinished
		return true, escActDown
	case 'C':
		m.state = escFinished
		return true, escActRight
	case 'D':
		m.state = escFinished
		return true, escActLeft
	}
	return false, escActNone
}
