// Package cmds holds the stock leaf commands of the shell.
package cmds

import (
	"io"

	"termsh/logging"
	"termsh/shell"
)

// Deps are the collaborators some commands need. Commands whose dependency
// is nil are not registered.
type Deps struct {
	Logger    *logging.Logger
	Scheduler Scheduler
	Memory    io.ReaderAt // window read by hexdump, addressed from 0
	Ticks     func() uint64
	LED       Pin
	Exit      func() // ends the host session
}

// Pin is an output line such as a status LED.
type Pin interface {
	High()
	Low()
}

// Register adds the stock commands to r: help, history and clear in the base
// list, the rest in the general list.
func Register(r *shell.Registry, d Deps) error {
	for _, register := range []func(r *shell.Registry, d Deps) error{
		registerCore,
		registerRepeat,
		registerLog,
		registerSys,
	} {
		if err := register(r, d); err != nil {
			return err
		}
	}
	return nil
}

func registerAll(r *shell.Registry, list shell.List, cmds ...*shell.Command) error {
	for _, cmd := range cmds {
		if err := r.Register(list, cmd); err != nil {
			return err
		}
	}
	return nil
}

func registerChildren(r *shell.Registry, parent *shell.Command, children ...*shell.Command) error {
	for _, child := range children {
		if err := r.RegisterChild(parent, child); err != nil {
			return err
		}
	}
	return nil
}
