// Package shell runs the command shell as a kernel task on the serial line.
package shell

import (
	"io"

	consoleclient "termsh/rtos/client/console"
	serialclient "termsh/rtos/client/serial"
	"termsh/rtos/kernel"
	"termsh/rtos/proto"
	core "termsh/shell"
)

// Service subscribes to the serial service and feeds every received byte to
// a core.Shell. Shell output goes back to the serial line and, when a console
// capability is set, is mirrored to the console.
type Service struct {
	reg     *core.Registry
	serial  kernel.Capability
	rx      kernel.Capability
	console kernel.Capability
	opts    []core.Option
}

// New creates the service. rx must carry both rights: the service receives on
// it and hands a send-only copy to the serial service. console may be the
// zero Capability.
func New(reg *core.Registry, serial, rx, console kernel.Capability, opts ...core.Option) *Service {
	return &Service{reg: reg, serial: serial, rx: rx, console: console, opts: opts}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.rx)
	if !ok {
		return
	}

	var out io.Writer = serialclient.NewWriter(ctx, s.serial)
	if s.console.Valid() {
		out = io.MultiWriter(out, consoleclient.NewWriter(ctx, s.console))
	}
	opts := append([]core.Option{core.WithClock(NewTickClock(ctx))}, s.opts...)
	sh := core.New(out, s.reg, opts...)

	if res := serialclient.Subscribe(ctx, s.serial, s.rx.Restrict(kernel.RightSend)); res != kernel.SendOK {
		return
	}
	sh.Start()

	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgSerialData {
			continue
		}
		_, _ = sh.Write(msg.Payload())
	}
}
