// Package console mirrors the shell byte stream onto the display through a
// VT100 terminal emulator.
package console

import (
	"termsh/hal"
	"termsh/rtos/kernel"
	"termsh/rtos/proto"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	fontHeight = 10
	fontOffset = 6
)

type Service struct {
	disp hal.Display
	ep   kernel.Capability

	fb hal.Framebuffer
	d  *fbDisplay
	t  *tinyterm.Terminal
}

func New(disp hal.Display, ep kernel.Capability) *Service {
	return &Service{disp: disp, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	if s.disp == nil {
		return
	}
	s.fb = s.disp.Framebuffer()
	if s.fb == nil || s.fb.Format() != hal.PixelFormatRGB565 {
		return
	}

	s.d = newFBDisplay(s.fb)
	s.reset()

	dirty := false

	tickCh := make(chan uint64, 16)
	go func() {
		last := ctx.NowTick()
		for {
			last = ctx.WaitTick(last)
			select {
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case <-tickCh:
			if dirty {
				_ = s.d.Display()
				dirty = false
			}

		case msg, ok := <-ch:
			if !ok {
				return
			}
			if proto.Kind(msg.Kind) == proto.MsgConsoleWrite {
				_, _ = s.t.Write(msg.Payload())
				dirty = true
			}
		}
	}
}

func (s *Service) reset() {
	s.d.clear()
	s.t = tinyterm.NewTerminal(s.d)
	s.t.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: fontHeight,
		FontOffset: fontOffset,
	})
	s.fb.ClearRGB(0, 0, 0)
	_ = s.fb.Present()
}
