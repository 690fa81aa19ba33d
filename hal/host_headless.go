//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
	// Drain is how long the runner keeps going after stdin ends, so queued
	// input is still executed.
	Drain time.Duration
}

var (
	errTickLimit   = errors.New("tick limit reached")
	errInputClosed = errors.New("input closed")
)

// RunHeadless runs the system on the terminal: stdin is the serial input
// (raw mode when it is a terminal) and stdout the serial output. It returns
// nil when the tick limit is reached or stdin has ended and drained.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Drain <= 0 {
		cfg.Drain = time.Second
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHostHAL()
	restore, err := h.serial.attachStdin(os.Stdin)
	if err != nil {
		return fmt.Errorf("stdin raw mode: %w", err)
	}
	defer restore()

	step := newApp(h)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t := time.NewTicker(d)
		defer t.Stop()

		var tick uint64
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case now := <-t.C:
				h.t.sync(now)
				if step != nil {
					if err := step(); err != nil {
						return err
					}
				}
				tick++
				if cfg.Ticks > 0 && tick >= cfg.Ticks {
					return errTickLimit
				}
			}
		}
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return nil
		case <-h.serial.Closed():
		}
		select {
		case <-gctx.Done():
			return nil
		case <-time.After(cfg.Drain):
			return errInputClosed
		}
	})

	err = g.Wait()
	if errors.Is(err, errTickLimit) || errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}
