package cmds

import (
	"errors"
	"io"
	"strings"

	"termsh/shell"
)

const clearLines = 0x30

func registerCore(r *shell.Registry, d Deps) error {
	if err := registerAll(r, shell.ListBase,
		shell.HelpCommand(),
		&shell.Command{Name: "history,hist", Short: "print command history", Fn: cmdHistory},
		&shell.Command{Name: "clear,c", Short: "clear screen", Fn: cmdClear},
	); err != nil {
		return err
	}
	if err := registerAll(r, shell.ListGeneral,
		&shell.Command{Name: "echo", Usage: "[ARG...]", Short: "print arguments", Fn: cmdEcho},
	); err != nil {
		return err
	}
	if d.Memory == nil {
		return nil
	}
	return registerAll(r, shell.ListGeneral, &shell.Command{
		Name:  "hexdump,hd",
		Short: "hex dump",
		Long:  "Dumps SIZE bytes starting at ADDRESS, 16 per row. Both accept 0x hex.",
		Args: []shell.Arg{
			{Name: "address", Type: shell.TypeNum, Description: "start offset"},
			{Name: "size", Type: shell.TypeNum, Description: "byte count", Default: "0x40"},
		},
		Fn: func(c *shell.Ctx) shell.Status { return cmdHexdump(c, d.Memory) },
	})
}

func cmdEcho(c *shell.Ctx) shell.Status {
	c.Print(strings.Join(c.Args, " "))
	c.Print("\n")
	return shell.StatusOKQuiet
}

func cmdClear(c *shell.Ctx) shell.Status {
	c.Print(strings.Repeat("\n", clearLines))
	return shell.StatusOKQuiet
}

func cmdHistory(c *shell.Ctx) shell.Status {
	if _, err := c.Shell.History().WriteTo(c); err != nil {
		return shell.StatusFail
	}
	return shell.StatusOK
}

func cmdHexdump(c *shell.Ctx, mem io.ReaderAt) shell.Status {
	addr, ok := c.Arg(0).Uint32()
	if !ok {
		return shell.StatusBadArg
	}
	size, ok := c.Arg(1).Uint32()
	if !ok {
		return shell.StatusBadArg
	}
	var row [16]byte
	for off := uint64(0); off < uint64(size); off += uint64(len(row)) {
		want := uint64(size) - off
		if want > uint64(len(row)) {
			want = uint64(len(row))
		}
		at := uint64(addr) + off
		n, err := mem.ReadAt(row[:want], int64(at))
		if n > 0 {
			hexdump(c, uint32(at), row[:n])
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, io.EOF) {
			c.Printf("read: %v\n", err)
			return shell.StatusFail
		}
		if off == 0 && n == 0 {
			c.Printf("address 0x%08x out of range\n", addr)
			return shell.StatusFail3
		}
		break
	}
	return shell.StatusOKQuiet
}

func hexdump(w io.Writer, addr uint32, b []byte) {
	var line strings.Builder
	for i := 0; i < len(b); i += 16 {
		line.Reset()
		writeHex(&line, uint64(addr)+uint64(i), 8)
		line.WriteString(": ")
		for j := 0; j < 16; j++ {
			if i+j < len(b) {
				writeHex(&line, uint64(b[i+j]), 2)
				line.WriteByte(' ')
			} else {
				line.WriteString("   ")
			}
		}
		line.WriteByte(' ')
		for j := 0; j < 16 && i+j < len(b); j++ {
			c := b[i+j]
			if c < 0x20 || c > 0x7e {
				c = '.'
			}
			line.WriteByte(c)
		}
		line.WriteByte('\n')
		io.WriteString(w, line.String())
	}
}

func writeHex(b *strings.Builder, v uint64, width int) {
	const digits = "0123456789abcdef"
	for shift := (width - 1) * 4; shift >= 0; shift -= 4 {
		b.WriteByte(digits[(v>>uint(shift))&0xf])
	}
}
