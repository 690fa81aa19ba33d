package serial

import (
	"fmt"

	"termsh/rtos/kernel"
	"termsh/rtos/proto"
)

// writeRetries bounds how many ticks a Writer waits for queue space per chunk.
const writeRetries = 100

// Subscribe registers a receive endpoint for serial data.
func Subscribe(ctx *kernel.Context, serialCap, rxCap kernel.Capability) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoContext
	}
	return ctx.SendToCapResult(serialCap, uint16(proto.MsgSerialSubscribe), nil, rxCap)
}

// Write sends bytes to the serial interface.
func Write(ctx *kernel.Context, serialCap kernel.Capability, payload []byte) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoContext
	}
	if len(payload) > kernel.MaxMessageBytes {
		payload = payload[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapResult(serialCap, uint16(proto.MsgSerialWrite), payload, kernel.Capability{})
}

// Writer is an io.Writer over the serial service. Payloads are split into
// message-sized chunks; a full queue is retried on the next tick.
type Writer struct {
	ctx *kernel.Context
	cap kernel.Capability
}

func NewWriter(ctx *kernel.Context, serialCap kernel.Capability) *Writer {
	return &Writer{ctx: ctx, cap: serialCap}
}

func (w *Writer) Write(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		chunk := p[n:]
		if len(chunk) > kernel.MaxMessageBytes {
			chunk = chunk[:kernel.MaxMessageBytes]
		}
		res := w.ctx.SendToCapRetry(w.cap, uint16(proto.MsgSerialWrite), chunk, kernel.Capability{}, writeRetries)
		if res != kernel.SendOK {
			return n, fmt.Errorf("serial write: %s", res)
		}
		n += len(chunk)
	}
	return n, nil
}
