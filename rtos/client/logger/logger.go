package logger

import (
	"termsh/rtos/kernel"
	"termsh/rtos/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoContext
	}
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(b), kernel.Capability{})
}

// Sink forwards formatted lines to the logger service. It satisfies
// logging.Sink; lines are dropped while the service queue is full.
type Sink struct {
	ctx *kernel.Context
	cap kernel.Capability
}

func NewSink(ctx *kernel.Context, logCap kernel.Capability) *Sink {
	return &Sink{ctx: ctx, cap: logCap}
}

func (s *Sink) WriteLineString(line string) {
	_ = Log(s.ctx, s.cap, line)
}
