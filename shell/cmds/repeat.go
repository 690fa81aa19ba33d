package cmds

import (
	"strings"
	"sync"
	"time"

	"termsh/shell"
)

// Scheduler runs fn every period on its own goroutine until stop is called.
type Scheduler interface {
	Every(period time.Duration, fn func()) (stop func())
}

// TickerScheduler is a Scheduler backed by time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(period time.Duration, fn func()) func() {
	t := time.NewTicker(period)
	done := make(chan struct{})
	var once sync.Once
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				fn()
			}
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}

type repeater struct {
	sched Scheduler

	mu   sync.Mutex
	stop func()
	line string
}

func registerRepeat(r *shell.Registry, d Deps) error {
	if d.Scheduler == nil {
		return nil
	}
	rp := &repeater{sched: d.Scheduler}
	repeat := &shell.Command{
		Name:  "repeat,r",
		Usage: "<period_ms:num> COMMAND...",
		Short: "repeat command at a given period",
		Long:  "Runs COMMAND every period_ms milliseconds in the background\nuntil 'repeat stop'. Only one repeat runs at a time.",
		Args:  []shell.Arg{{Name: "period_ms", Type: shell.TypeNum, Description: "period in milliseconds"}},
		Fn:    rp.start,
	}
	if err := registerAll(r, shell.ListGeneral, repeat); err != nil {
		return err
	}
	return registerChildren(r, repeat,
		&shell.Command{Name: "stop", Short: "stop the running repeat", Fn: rp.halt},
	)
}

func (rp *repeater) start(c *shell.Ctx) shell.Status {
	ms, ok := c.Arg(0).Uint32()
	if !ok || ms == 0 {
		c.Print("period must be a positive integer\n")
		return shell.StatusBadArg
	}
	target := c.Args[1:]
	if len(target) == 0 {
		c.Print("missing command\n")
		return shell.StatusBadArg
	}
	if cmd, _ := c.Shell.Registry().Resolve(target); cmd == nil {
		c.Printf("command not found: %s\n", target[0])
		return shell.StatusFail
	}

	rp.mu.Lock()
	defer rp.mu.Unlock()
	if rp.stop != nil {
		c.Printf("already repeating '%s'\n", rp.line)
		return shell.StatusFail3
	}
	line := joinTokens(target)
	period := time.Duration(ms) * time.Millisecond
	sh := c.Shell
	rp.line = line
	rp.stop = rp.sched.Every(period, func() { sh.ExecuteLine(line) })
	c.Printf("repeating command '%s' every %d ms\n", line, ms)
	return shell.StatusOK
}

func (rp *repeater) halt(c *shell.Ctx) shell.Status {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	if rp.stop == nil {
		c.Print("nothing to stop\n")
		return shell.StatusFail
	}
	rp.stop()
	rp.stop = nil
	c.Print("repeat stopped\n")
	return shell.StatusOK
}

// joinTokens rebuilds a line that tokenizes back to toks.
func joinTokens(toks []string) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case strings.ContainsRune(t, '"'):
			b.WriteByte('\'')
			b.WriteString(t)
			b.WriteByte('\'')
		case t == "" || strings.ContainsAny(t, " \t'"):
			b.WriteByte('"')
			b.WriteString(t)
			b.WriteByte('"')
		default:
			b.WriteString(t)
		}
	}
	return b.String()
}
