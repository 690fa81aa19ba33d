package shell

import (
	"sync/atomic"
	"time"

	"termsh/rtos/kernel"
)

// TickPeriod is the duration of one kernel tick as produced by the hal time
// sources.
const TickPeriod = time.Millisecond

// TickClock measures time in kernel ticks.
type TickClock struct {
	ctx *kernel.Context
}

func NewTickClock(ctx *kernel.Context) TickClock {
	return TickClock{ctx: ctx}
}

func (c TickClock) Elapsed() time.Duration {
	return time.Duration(c.ctx.NowTick()) * TickPeriod
}

// Scheduler runs periodic jobs off the kernel tick counter.
type Scheduler struct {
	ctx *kernel.Context
}

func NewScheduler(ctx *kernel.Context) *Scheduler {
	return &Scheduler{ctx: ctx}
}

// Every calls fn each period, rounded to whole ticks (at least one), until
// stop is called. Missed periods are skipped, not replayed.
func (s *Scheduler) Every(period time.Duration, fn func()) (stop func()) {
	n := uint64(period / TickPeriod)
	if n == 0 {
		n = 1
	}
	var stopped atomic.Bool
	go func() {
		next := s.ctx.NowTick() + n
		for {
			now := s.ctx.WaitTick(next - 1)
			if stopped.Load() {
				return
			}
			fn()
			next += n
			if next <= now {
				next = now + n
			}
		}
	}()
	return func() { stopped.Store(true) }
}
