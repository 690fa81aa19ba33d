package cmds

import (
	"runtime"
	"sync/atomic"

	"termsh/internal/buildinfo"
	"termsh/shell"
)

func registerSys(r *shell.Registry, d Deps) error {
	if err := registerAll(r, shell.ListGeneral, &shell.Command{
		Name:  "version",
		Short: "print build information",
		Fn: func(c *shell.Ctx) shell.Status {
			c.Printf("termsh %s\n", buildinfo.String())
			return shell.StatusOKQuiet
		},
	}, &shell.Command{
		Name:  "mem",
		Short: "print heap usage",
		Fn:    cmdMem,
	}); err != nil {
		return err
	}
	if d.Ticks != nil {
		if err := registerAll(r, shell.ListGeneral, &shell.Command{
			Name:  "ticks",
			Short: "print the kernel tick counter",
			Fn: func(c *shell.Ctx) shell.Status {
				c.Printf("%d\n", d.Ticks())
				return shell.StatusOKQuiet
			},
		}); err != nil {
			return err
		}
	}
	if d.LED != nil {
		var on atomic.Bool
		if err := registerAll(r, shell.ListGeneral, &shell.Command{
			Name:  "led",
			Usage: OnOffUsage,
			Short: "switch the status LED",
			Fn: func(c *shell.Ctx) shell.Status {
				return onOffCommand(c, "led", on.Load, func(v bool) {
					if v {
						d.LED.High()
					} else {
						d.LED.Low()
					}
					on.Store(v)
				})
			},
		}); err != nil {
			return err
		}
	}
	if d.Exit == nil {
		return nil
	}
	return registerAll(r, shell.ListBase, &shell.Command{
		Name:  "exit,quit",
		Short: "end the session",
		Fn: func(c *shell.Ctx) shell.Status {
			c.Print("bye\n")
			d.Exit()
			return shell.StatusOKQuiet
		},
	})
}

func cmdMem(c *shell.Ctx) shell.Status {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	c.Printf("mem: alloc=%d sys=%d\n", ms.Alloc, ms.Sys)
	return shell.StatusOKQuiet
}
