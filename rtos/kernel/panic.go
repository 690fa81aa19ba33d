package kernel

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// PanicInfo contains details about a panic recovered from a task.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

func (p PanicInfo) String() string {
	return fmt.Sprintf("task=%d panic=%v", p.TaskID, p.Value)
}

// StackLines returns the non-empty lines of the captured stack.
func (p PanicInfo) StackLines() []string {
	var out []string
	for _, line := range strings.Split(string(p.Stack), "\n") {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

var (
	panicActive atomic.Bool
	panicOnce   sync.Once

	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether a task has panicked.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs a process-wide panic handler.
//
// The handler is invoked at most once (on the first panic). It must not panic.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		info.Stack = captureStack()
		if v := panicHandler.Load(); v != nil {
			if fn, ok := v.(func(PanicInfo)); ok && fn != nil {
				fn(info)
			}
		}
	})
}
