package cmds

import "termsh/shell"

// OnOffUsage is the usage string of commands parsed by ParseOnOff.
const OnOffUsage = "[on|off]"

// ParseOnOff accepts on/1/true and off/0/false.
func ParseOnOff(s string) (on, ok bool) {
	switch s {
	case "on", "1", "true":
		return true, true
	case "off", "0", "false":
		return false, true
	}
	return false, false
}

// onOffCommand prints the current value without arguments, otherwise sets it.
func onOffCommand(c *shell.Ctx, what string, get func() bool, set func(bool)) shell.Status {
	if len(c.Args) == 0 {
		if get() {
			c.Print("1\n")
		} else {
			c.Print("0\n")
		}
		return shell.StatusOKQuiet
	}
	if len(c.Args) != 1 {
		c.Print("expected a single on/off argument\n")
		return shell.StatusBadArg
	}
	on, ok := ParseOnOff(c.Args[0])
	if !ok {
		c.Printf("bad arg %q\n", c.Args[0])
		return shell.StatusBadArg
	}
	set(on)
	state := "off"
	if on {
		state = "on"
	}
	c.Printf("%s turned %s\n", what, state)
	return shell.StatusOK
}
