package kernel

import (
	"sync"
	"sync/atomic"
)

const (
	maxTasks     = 32
	maxEndpoints = 32
	mailboxSlots = 8
)

type TaskID uint8

// Rights define which operations are allowed for a capability.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies an IPC destination.
type Endpoint uint8

// Capability grants access to an IPC endpoint.
//
// It is opaque by construction (no exported fields) and may be transferred via IPC.
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) valid() bool {
	return c.rights != 0
}

func (c Capability) Valid() bool { return c.valid() }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict returns a capability with a reduced set of rights.
func (c Capability) Restrict(rights Rights) Capability {
	if !c.valid() {
		return Capability{}
	}
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// MaxMessageBytes is the maximum payload size for IPC messages.
//
// Serial and console streams are chunked to this size by their clients.
const MaxMessageBytes = 128

// Message is a fixed-size IPC envelope.
type Message struct {
	To   Endpoint
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
	Cap  Capability
}

// Payload returns the used part of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidToCap
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
	SendErrNoContext
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrInvalidToCap:
		return "invalid to capability"
	case SendErrToNoSendRight:
		return "to capability has no send right"
	case SendErrNoEndpoint:
		return "no such endpoint"
	case SendErrPayloadTooLarge:
		return "payload too large"
	case SendErrQueueFull:
		return "queue full"
	case SendErrNoContext:
		return "no kernel context"
	default:
		return "unknown"
	}
}

// Task is a long-running unit of execution. Run is started on its own
// goroutine by AddTask and blocks on its endpoints or on ticks.
type Task interface {
	Run(*Context)
}

type endpointState struct {
	ch     chan Message
	closed bool
}

// Kernel routes messages between endpoints and distributes the tick counter.
type Kernel struct {
	mu            sync.Mutex
	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	taskCount atomic.Uint32

	tickMu sync.Mutex
	tickCv *sync.Cond
	tick   uint64
}

// New creates a kernel instance.
func New() *Kernel {
	k := &Kernel{}
	k.tickCv = sync.NewCond(&k.tickMu)
	return k
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.endpointCount >= maxEndpoints || rights == 0 {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	k.endpoints[ep].ch = make(chan Message, mailboxSlots)
	return Capability{ep: ep, rights: rights}
}

// CloseEndpoint closes the endpoint behind c. Pending messages can still be
// received; further sends fail with SendErrNoEndpoint.
func (k *Kernel) CloseEndpoint(c Capability) {
	if !c.valid() {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if c.ep >= k.endpointCount {
		return
	}
	st := &k.endpoints[c.ep]
	if st.closed {
		return
	}
	st.closed = true
	close(st.ch)
}

// AddTask starts t on a new goroutine and returns its ID. A panic inside the
// task switches the kernel into panic mode.
func (k *Kernel) AddTask(t Task) TaskID {
	n := k.taskCount.Add(1)
	if n > maxTasks {
		k.taskCount.Add(^uint32(0))
		return 0
	}
	id := TaskID(n - 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				triggerPanic(PanicInfo{TaskID: id, Value: r})
			}
		}()
		t.Run(&Context{k: k})
	}()
	return id
}

// TickTo advances the tick counter to seq and wakes tick waiters. Older
// values are ignored.
func (k *Kernel) TickTo(seq uint64) {
	k.tickMu.Lock()
	if seq > k.tick {
		k.tick = seq
		k.tickCv.Broadcast()
	}
	k.tickMu.Unlock()
}

// Ticks returns the current tick counter.
func (k *Kernel) Ticks() uint64 { return k.nowTick() }

func (k *Kernel) nowTick() uint64 {
	k.tickMu.Lock()
	defer k.tickMu.Unlock()
	return k.tick
}

func (k *Kernel) waitTick(after uint64) uint64 {
	k.tickMu.Lock()
	defer k.tickMu.Unlock()
	for k.tick <= after {
		k.tickCv.Wait()
	}
	return k.tick
}

func (k *Kernel) send(to Endpoint, kind uint16, payload []byte, xfer Capability) SendResult {
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	var msg Message
	msg.To = to
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)
	msg.Cap = xfer

	k.mu.Lock()
	defer k.mu.Unlock()
	if to >= k.endpointCount || k.endpoints[to].closed {
		return SendErrNoEndpoint
	}
	select {
	case k.endpoints[to].ch <- msg:
		return SendOK
	default:
		return SendErrQueueFull
	}
}

func (k *Kernel) recvChan(ep Endpoint) <-chan Message {
	k.mu.Lock()
	defer k.mu.Unlock()
	if ep >= k.endpointCount {
		return nil
	}
	return k.endpoints[ep].ch
}
