package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgSerialSubscribe
	MsgSerialData
	MsgSerialWrite
	MsgConsoleWrite
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgSerialSubscribe:
		return "serial_subscribe"
	case MsgSerialData:
		return "serial_data"
	case MsgSerialWrite:
		return "serial_write"
	case MsgConsoleWrite:
		return "console_write"
	default:
		return "unknown"
	}
}
