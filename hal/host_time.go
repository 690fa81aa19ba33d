//go:build !tinygo

package hal

import "time"

// hostTime derives the tick counter from wall-clock milliseconds since the
// first sync.
type hostTime struct {
	ch    chan uint64
	seq   uint64
	start time.Time
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 64)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// sync publishes the current millisecond count if it moved. At least one
// tick is published per call so a runner slower than 1 kHz still advances.
func (t *hostTime) sync(now time.Time) {
	if t.start.IsZero() {
		t.start = now
	}
	seq := uint64(now.Sub(t.start) / time.Millisecond)
	if seq <= t.seq {
		seq = t.seq + 1
	}
	t.seq = seq
	select {
	case t.ch <- seq:
	default:
	}
}
