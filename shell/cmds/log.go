package cmds

import (
	"termsh/logging"
	"termsh/shell"
)

func registerLog(r *shell.Registry, d Deps) error {
	l := d.Logger
	if l == nil {
		return nil
	}
	mod := l.Module("cmd_log", logging.LevelNotSet)

	logCmd := &shell.Command{
		Name:  "log",
		Usage: OnOffUsage,
		Short: "enable or disable logging",
		Fn: func(c *shell.Ctx) shell.Status {
			return onOffCommand(c, "logging",
				func() bool { return l.Config().Enabled },
				func(on bool) { l.Update(func(cfg *logging.Config) { cfg.Enabled = on }) })
		},
	}
	if err := registerAll(r, shell.ListGeneral, logCmd); err != nil {
		return err
	}

	msgArgs := []shell.Arg{{Name: "msg", Type: shell.TypeStr, Description: "message text"}}
	message := func(level logging.Level) shell.Func {
		return func(c *shell.Ctx) shell.Status {
			mod.Logf(level, "%s", c.Arg(0).String())
			return shell.StatusOK
		}
	}

	return registerChildren(r, logCmd,
		&shell.Command{Name: "info", Short: "log info message", Args: msgArgs, Fn: message(logging.LevelInfo)},
		&shell.Command{Name: "warn", Short: "log warning message", Args: msgArgs, Fn: message(logging.LevelWarn)},
		&shell.Command{Name: "err", Short: "log error message", Args: msgArgs, Fn: message(logging.LevelError)},
		&shell.Command{Name: "color", Usage: OnOffUsage, Short: "log coloring", Fn: func(c *shell.Ctx) shell.Status {
			return onOffCommand(c, "log coloring",
				func() bool { return l.Config().Color },
				func(on bool) { l.Update(func(cfg *logging.Config) { cfg.Color = on }) })
		}},
		&shell.Command{Name: "prefix", Usage: OnOffUsage, Short: "log prefix", Fn: func(c *shell.Ctx) shell.Status {
			return onOffCommand(c, "log prefix",
				func() bool { return l.Config().Header },
				func(on bool) { l.Update(func(cfg *logging.Config) { cfg.Header = on }) })
		}},
		&shell.Command{Name: "level", Usage: "[debug|info|warn|error]", Short: "show or set the log level", Fn: func(c *shell.Ctx) shell.Status {
			if len(c.Args) == 0 {
				c.Printf("%s\n", l.Config().Level)
				return shell.StatusOKQuiet
			}
			lvl, ok := logging.ParseLevel(c.Args[0])
			if !ok {
				c.Printf("bad level %q\n", c.Args[0])
				return shell.StatusBadArg
			}
			l.Update(func(cfg *logging.Config) { cfg.Level = lvl })
			return shell.StatusOK
		}},
	)
}
