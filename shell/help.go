package shell

import (
	"fmt"
	"io"
	"strings"
)

// DepthAll makes help recurse through every nested level.
const DepthAll = 7

const helpColumn = 40

// WriteHelp prints cmd and up to depth levels of its children, one command
// per line: dotted path, signature, then the short description at a fixed
// column.
func WriteHelp(w io.Writer, cmd *Command, depth int) error {
	return writeHelp(w, cmd, 0, depth)
}

func writeHelp(w io.Writer, cmd *Command, level, depth int) error {
	var b strings.Builder
	if level > 0 {
		b.WriteString(strings.Repeat(" ", (level-1)*3))
		b.WriteString("`- ")
	}
	b.WriteString(cmd.Path())
	if sig := cmd.Signature(); sig != "" {
		b.WriteByte(' ')
		b.WriteString(sig)
	}
	if cmd.Short != "" {
		pad := helpColumn - b.Len()
		if pad < 1 {
			pad = 1
		}
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(cmd.Short)
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if level >= depth {
		return nil
	}
	for _, child := range cmd.children {
		if err := writeHelp(w, child, level+1, depth); err != nil {
			return err
		}
	}
	return nil
}

// WriteCommandHelp prints the full help for one command: its signature line,
// argument descriptions, long description and immediate children.
func WriteCommandHelp(w io.Writer, cmd *Command) error {
	if err := writeHelp(w, cmd, 0, 0); err != nil {
		return err
	}
	for _, a := range cmd.Args {
		text := fmt.Sprintf("  <%s:%s>", a.Name, a.Type)
		if a.Description != "" {
			text += strings.Repeat(" ", max(1, helpColumn-len(text))) + a.Description
		}
		if a.Default != "" {
			text += " (default " + a.Default + ")"
		}
		if _, err := io.WriteString(w, text+"\n"); err != nil {
			return err
		}
	}
	if cmd.Long != "" {
		long := cmd.Long
		if !strings.HasSuffix(long, "\n") {
			long += "\n"
		}
		if _, err := io.WriteString(w, long); err != nil {
			return err
		}
	}
	for _, child := range cmd.children {
		if err := writeHelp(w, child, 1, 1); err != nil {
			return err
		}
	}
	return nil
}

// WriteRegistryHelp prints every top-level command down to depth.
func WriteRegistryHelp(w io.Writer, r *Registry, depth int) error {
	for l := List(0); l < listCount; l++ {
		for _, cmd := range r.lists[l] {
			if err := WriteHelp(w, cmd, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// HelpCommand returns the "help,?" command bound to the shell's registry.
func HelpCommand() *Command {
	return &Command{
		Name:  "help,?",
		Usage: "[--all|COMMAND...]",
		Short: "show command usage",
		Long:  "Without arguments lists top-level commands. --all recurses\nthrough subcommands; COMMAND shows one command in detail.",
		Fn:    runHelp,
	}
}

func runHelp(c *Ctx) Status {
	reg := c.Shell.Registry()
	switch {
	case len(c.Args) == 0:
		if err := WriteRegistryHelp(c, reg, 0); err != nil {
			return StatusFail
		}
	case len(c.Args) == 1 && (c.Args[0] == "--all" || c.Args[0] == "all"):
		if err := WriteRegistryHelp(c, reg, DepthAll); err != nil {
			return StatusFail
		}
	default:
		cmd, rest := reg.Resolve(c.Args)
		if cmd == nil {
			c.Printf("help: no such command %q\n", c.Args[0])
			return StatusBadArg
		}
		if len(rest) > 0 {
			c.Printf("help: %s has no subcommand %q\n", cmd.Path(), rest[0])
			return StatusBadArg
		}
		if err := WriteCommandHelp(c, cmd); err != nil {
			return StatusFail
		}
	}
	return StatusOK
}
