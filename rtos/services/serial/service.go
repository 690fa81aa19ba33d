package serial

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"termsh/hal"
	"termsh/logging"
	"termsh/rtos/kernel"
	"termsh/rtos/proto"
)

// Service routes UART bytes between clients and the HAL serial interface.
type Service struct {
	serial hal.Serial
	ep     kernel.Capability
	log    *logging.Module

	mu    sync.Mutex
	rxCap kernel.Capability
	eof   bool
}

// New creates a serial service. log may be nil.
func New(serial hal.Serial, ep kernel.Capability, log *logging.Module) *Service {
	return &Service{serial: serial, ep: ep, log: log}
}

// Run handles serial requests and streams incoming data to the subscriber.
// When the input ends the subscriber's endpoint is closed.
func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	if s.serial != nil {
		go s.readLoop(ctx)
	}

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgSerialSubscribe:
			s.subscribe(ctx, msg.Cap)
		case proto.MsgSerialWrite:
			if s.serial == nil || len(msg.Payload()) == 0 {
				continue
			}
			if _, err := s.serial.Write(msg.Payload()); err != nil {
				s.log.Warnf("write: %v", err)
			}
		}
	}
}

func (s *Service) subscribe(ctx *kernel.Context, cap kernel.Capability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.eof {
		ctx.CloseEndpoint(cap)
		return
	}
	s.rxCap = cap
}

// endInput marks the input as gone and closes the current subscriber.
func (s *Service) endInput(ctx *kernel.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eof = true
	if s.rxCap.Valid() {
		ctx.CloseEndpoint(s.rxCap)
		s.rxCap = kernel.Capability{}
	}
}

func (s *Service) readLoop(ctx *kernel.Context) {
	buf := make([]byte, kernel.MaxMessageBytes)
	for {
		n, err := s.serial.Read(buf)
		if n > 0 {
			if err := s.sendData(ctx, buf[:n]); err != nil {
				s.log.Warnf("%v", err)
			}
		}
		if errors.Is(err, io.EOF) {
			s.log.Infof("input closed")
			s.endInput(ctx)
			return
		}
		if err != nil {
			ctx.BlockOnTick()
		}
	}
}

func (s *Service) sendData(ctx *kernel.Context, payload []byte) error {
	s.mu.Lock()
	cap := s.rxCap
	s.mu.Unlock()
	if !cap.Valid() {
		return nil
	}
	for len(payload) > 0 {
		chunk := payload
		if len(chunk) > kernel.MaxMessageBytes {
			chunk = chunk[:kernel.MaxMessageBytes]
		}
		res := ctx.SendToCapRetry(cap, uint16(proto.MsgSerialData), chunk, kernel.Capability{}, 100)
		if res != kernel.SendOK {
			return fmt.Errorf("serial send data: %s", res)
		}
		payload = payload[len(chunk):]
	}
	return nil
}
