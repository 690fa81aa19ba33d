package app

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"termsh/hal"
	"termsh/internal/buildinfo"
	"termsh/logging"
	logclient "termsh/rtos/client/logger"
	"termsh/rtos/kernel"
	"termsh/rtos/services/console"
	"termsh/rtos/services/logger"
	"termsh/rtos/services/serial"
	shellsvc "termsh/rtos/services/shell"
	"termsh/shell"
	"termsh/shell/cmds"
)

type system struct {
	k   *kernel.Kernel
	log *logging.Logger
	reg *shell.Registry
}

type Config struct {
	Shell    shell.Config
	LogLevel logging.Level
	// Console mirrors the shell onto the display.
	Console bool
	// Exit is called by the exit command; nil leaves the command out.
	Exit func()
	// OnPanic replaces the panic screen. The default halts after drawing.
	OnPanic func(kernel.PanicInfo)
}

func DefaultConfig() Config {
	cfg := Config{
		Shell:    shell.DefaultConfig(),
		LogLevel: logging.LevelInfo,
		Console:  true,
	}
	cfg.Shell.Banner = "termsh " + buildinfo.Short() + ", type 'help' for commands"
	return cfg
}

// New initializes and starts the system with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the system and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

// NewWithConfig starts the system. The returned step func reports a startup
// failure to the host runner.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	if _, err := newSystem(h, cfg); err != nil {
		return func() error { return err }
	}
	return func() error { return nil }
}

func RunWithConfig(h hal.HAL, cfg Config) {
	if _, err := newSystem(h, cfg); err != nil && h.Logger() != nil {
		h.Logger().WriteLineString(err.Error())
	}
	select {}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	installPanicHandler(h, cfg.OnPanic)

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	serialEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	shellEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	consoleEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	ctx := k.NewContext()
	lg := logging.New(logclient.NewSink(ctx, logEP.Restrict(kernel.RightSend)), logging.Config{
		Enabled: true,
		Level:   cfg.LogLevel,
		Color:   cfg.Shell.Color,
		Header:  true,
	})
	lg.SetClock(func() time.Duration { return time.Duration(k.Ticks()) * shellsvc.TickPeriod })

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(serial.New(h.Serial(), serialEP.Restrict(kernel.RightRecv), lg.Module("serial", logging.LevelNotSet)))

	var consoleCap kernel.Capability
	if cfg.Console && h.Display() != nil && h.Display().Framebuffer() != nil {
		k.AddTask(console.New(h.Display(), consoleEP.Restrict(kernel.RightRecv)))
		consoleCap = consoleEP.Restrict(kernel.RightSend)
	}

	reg := shell.NewRegistry()
	if err := cmds.Register(reg, cmds.Deps{
		Logger:    lg,
		Scheduler: shellsvc.NewScheduler(ctx),
		Memory:    framebufferMemory(h),
		Ticks:     k.Ticks,
		LED:       h.LED(),
		Exit:      cfg.Exit,
	}); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}

	k.AddTask(shellsvc.New(reg, serialEP.Restrict(kernel.RightSend), shellEP, consoleCap,
		shell.WithConfig(cfg.Shell),
		shell.WithLogger(lg.Module("shell", logging.LevelNotSet)),
	))

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go pumpTicks(k, ch)
		}
	}

	lg.Module("app", logging.LevelNotSet).Infof("started %s", buildinfo.String())
	return &system{k: k, log: lg, reg: reg}, nil
}

// pumpTicks forwards hal ticks to the kernel. It stops once a task has
// panicked, which freezes every tick-driven service.
func pumpTicks(k *kernel.Kernel, ch <-chan uint64) {
	for seq := range ch {
		if kernel.InPanicMode() {
			return
		}
		k.TickTo(seq)
	}
}

// framebufferMemory exposes the display memory to hexdump.
func framebufferMemory(h hal.HAL) io.ReaderAt {
	disp := h.Display()
	if disp == nil {
		return nil
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Buffer() == nil {
		return nil
	}
	return bytes.NewReader(fb.Buffer())
}
