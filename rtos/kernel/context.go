package kernel

// Context provides task-local access to kernel operations.
type Context struct {
	k *Kernel
}

// NewContext returns a context for code that runs outside a kernel task,
// such as host glue and tests.
func (k *Kernel) NewContext() *Context {
	return &Context{k: k}
}

// RecvChan returns the inbound message channel for an endpoint capability.
// The channel is closed by CloseEndpoint.
func (c *Context) RecvChan(epCap Capability) (<-chan Message, bool) {
	if c.k == nil || !epCap.valid() || !epCap.canRecv() {
		return nil, false
	}
	ch := c.k.recvChan(epCap.ep)
	if ch == nil {
		return nil, false
	}
	return ch, true
}

// CloseEndpoint ends the stream behind epCap. Any right is enough, so a
// producer holding a send capability can close its consumer's inbox.
func (c *Context) CloseEndpoint(epCap Capability) {
	if c.k == nil {
		return
	}
	c.k.CloseEndpoint(epCap)
}

// BlockOnTick blocks the task until the tick counter advances.
func (c *Context) BlockOnTick() {
	if c.k == nil {
		return
	}
	c.k.waitTick(c.k.nowTick())
}

// SendToCapResult sends a message and transfers an optional capability.
func (c *Context) SendToCapResult(toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	return c.k.send(toCap.ep, kind, payload, xfer)
}

// SendToCapRetry is SendToCapResult that waits one tick and tries again while
// the destination queue is full, at most limit extra times.
func (c *Context) SendToCapRetry(toCap Capability, kind uint16, payload []byte, xfer Capability, limit int) SendResult {
	res := c.SendToCapResult(toCap, kind, payload, xfer)
	for i := 0; i < limit && res == SendErrQueueFull; i++ {
		c.BlockOnTick()
		res = c.SendToCapResult(toCap, kind, payload, xfer)
	}
	return res
}

// NowTick returns the last observed tick value.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.nowTick()
}

// WaitTick blocks until tick advances past the provided value and returns the new tick.
func (c *Context) WaitTick(after uint64) uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.waitTick(after)
}
