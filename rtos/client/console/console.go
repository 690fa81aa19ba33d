package console

import (
	"termsh/rtos/kernel"
	"termsh/rtos/proto"
)

// Write sends a best-effort payload to the console service.
func Write(ctx *kernel.Context, consoleCap kernel.Capability, payload []byte) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoContext
	}
	if len(payload) > kernel.MaxMessageBytes {
		payload = payload[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapResult(consoleCap, uint16(proto.MsgConsoleWrite), payload, kernel.Capability{})
}

// Writer mirrors a byte stream onto the console. Chunks that do not fit the
// queue are dropped; Write never fails.
type Writer struct {
	ctx *kernel.Context
	cap kernel.Capability
}

func NewWriter(ctx *kernel.Context, consoleCap kernel.Capability) *Writer {
	return &Writer{ctx: ctx, cap: consoleCap}
}

func (w *Writer) Write(p []byte) (int, error) {
	for off := 0; off < len(p); off += kernel.MaxMessageBytes {
		end := off + kernel.MaxMessageBytes
		if end > len(p) {
			end = len(p)
		}
		_ = Write(w.ctx, w.cap, p[off:end])
	}
	return len(p), nil
}
