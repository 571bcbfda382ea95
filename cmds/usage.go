package cmds

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stdout)
}

func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	// aliases share the command pointer, print each command once
	names := make(map[*Command][]string)
	for name, cmd := range commands {
		names[cmd] = append(names[cmd], name)
	}
	type entry struct {
		names []string
		cmd   *Command
	}
	var entries []entry
	for cmd, ns := range names {
		slices.Sort(ns)
		entries = append(entries, entry{ns, cmd})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.names[0], b.names[0])
	})

	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		if e.cmd == nil {
			continue
		}
		line := indent + strings.Join(e.names, ", ")
		if args := e.cmd.argNames(); len(args) > 0 {
			line += " " + strings.Join(args, " ")
		}
		if e.cmd.Description != "" {
			line += "\t" + e.cmd.Description
		}
		fmt.Fprintln(w, line)
		if len(e.cmd.Subs) > 0 {
			writeCommands(w, e.cmd.Subs, depth+1)
		}
	}
}
