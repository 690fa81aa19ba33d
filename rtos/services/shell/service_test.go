package shell

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"termsh/rtos/kernel"
	"termsh/rtos/proto"
	core "termsh/shell"
	"termsh/shell/cmds"
)

// fakeSerial plays the serial service: it records the subscriber and collects
// everything written to the line.
type fakeSerial struct {
	t   *testing.T
	ctx *kernel.Context
	ep  kernel.Capability
	sub kernel.Capability
	out strings.Builder
}

func (f *fakeSerial) waitFor(want string) {
	f.t.Helper()
	ch, _ := f.ctx.RecvChan(f.ep)
	deadline := time.After(time.Second)
	for !strings.Contains(f.out.String(), want) {
		select {
		case msg := <-ch:
			switch proto.Kind(msg.Kind) {
			case proto.MsgSerialSubscribe:
				f.sub = msg.Cap
			case proto.MsgSerialWrite:
				f.out.Write(msg.Payload())
			}
		case <-deadline:
			f.t.Fatalf("serial output %q does not contain %q", f.out.String(), want)
		}
	}
}

func (f *fakeSerial) send(s string) {
	f.t.Helper()
	if res := f.ctx.SendToCapResult(f.sub, uint16(proto.MsgSerialData), []byte(s), kernel.Capability{}); res != kernel.SendOK {
		f.t.Fatalf("send %q: %s", s, res)
	}
}

func startTicks(k *kernel.Kernel) (stop func()) {
	done := make(chan struct{})
	go func() {
		for seq := uint64(1); ; seq++ {
			select {
			case <-done:
				return
			case <-time.After(time.Millisecond):
				k.TickTo(seq)
			}
		}
	}()
	return func() { close(done) }
}

func TestServiceRunsCommandsFromSerial(t *testing.T) {
	k := kernel.New()
	defer startTicks(k)()
	serialEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	rx := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	reg := core.NewRegistry()
	if err := cmds.Register(reg, cmds.Deps{}); err != nil {
		t.Fatal(err)
	}
	cfg := core.DefaultConfig()
	cfg.Color = false
	cfg.Banner = "hello"
	k.AddTask(New(reg, serialEP.Restrict(kernel.RightSend), rx, kernel.Capability{}, core.WithConfig(cfg)))

	f := &fakeSerial{t: t, ctx: k.NewContext(), ep: serialEP}
	f.waitFor("hello\r\n> ")
	if !f.sub.Valid() {
		t.Fatal("service did not subscribe")
	}

	f.send("echo a b\r")
	f.waitFor("echo a b\r\na b\r\n> ")

	f.send("bogus\r")
	f.waitFor("command not found: bogus\r\n")
}

func TestTickClock(t *testing.T) {
	k := kernel.New()
	c := NewTickClock(k.NewContext())
	k.TickTo(7)
	if got := c.Elapsed(); got != 7*TickPeriod {
		t.Fatalf("Elapsed() = %v; want %v", got, 7*TickPeriod)
	}
}

func TestSchedulerEveryAndStop(t *testing.T) {
	k := kernel.New()
	s := NewScheduler(k.NewContext())

	var calls atomic.Int32
	stop := s.Every(3*TickPeriod, func() { calls.Add(1) })

	// Give the job goroutine time to sample the start tick.
	time.Sleep(10 * time.Millisecond)
	for seq := uint64(1); seq <= 9; seq++ {
		k.TickTo(seq)
		time.Sleep(2 * time.Millisecond)
	}
	deadline := time.Now().Add(time.Second)
	for calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("calls = %d; want 3", calls.Load())
		}
		time.Sleep(time.Millisecond)
	}

	stop()
	k.TickTo(12)
	k.TickTo(15)
	time.Sleep(10 * time.Millisecond)
	if got := calls.Load(); got > 4 {
		t.Fatalf("calls after stop = %d; want at most 4", got)
	}
}
