//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"termsh/app"
	"termsh/hal"
	"termsh/logging"
	"termsh/rtos/kernel"
)

func main() {
	var hcfg hal.HeadlessConfig
	cfg := app.DefaultConfig()
	var logLevel string
	noColor := !cfg.Shell.Color
	flag.BoolVar(&hcfg.Enabled, "headless", true, "Run on the terminal only; false also opens a window showing the console (needs cgo).")
	flag.IntVar(&hcfg.Hz, "hz", 100, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Shell.Prompt, "prompt", cfg.Shell.Prompt, "Shell prompt.")
	flag.BoolVar(&noColor, "no-color", noColor, "Disable ANSI colors.")
	flag.BoolVar(&cfg.Shell.CRLF, "crlf", cfg.Shell.CRLF, "Translate \\n to \\r\\n on output.")
	flag.DurationVar(&cfg.Shell.EscapeTimeout, "esc-timeout", cfg.Shell.EscapeTimeout, "Escape sequence timeout.")
	flag.IntVar(&cfg.Shell.HistorySize, "history", cfg.Shell.HistorySize, "History buffer size in bytes.")
	flag.StringVar(&logLevel, "log-level", cfg.LogLevel.String(), "Log level: debug, info, warn, error or off.")
	flag.BoolVar(&cfg.Console, "console", cfg.Console, "Mirror the shell onto the display framebuffer.")
	flag.Parse()

	cfg.Shell.Color = !noColor
	lvl, ok := logging.ParseLevel(logLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", logLevel)
		os.Exit(2)
	}
	cfg.LogLevel = lvl

	if !hcfg.Enabled {
		if err := hal.RunWindow(func(h hal.HAL) func() error {
			return app.NewWithConfig(h, cfg)
		}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancelCause(sigCtx)
	defer cancel(nil)

	cfg.Exit = func() { cancel(nil) }
	cfg.OnPanic = func(info kernel.PanicInfo) { cancel(fmt.Errorf("panic: %s", info)) }

	err := hal.RunHeadless(ctx, func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}, hcfg)
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		err = cause
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
