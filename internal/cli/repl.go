package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output of the loop itself.
var printlnFn = fmt.Println

// command is one REPL verb. Commands with auth set are hidden and refused
// while nobody is logged in; the others only while somebody is.
type command struct {
	name  string
	usage string
	auth  bool
	run   func(ctx context.Context, args []string) error
}

// runREPL reads a line from reader, parses the first token as the command
// and dispatches it. Handler errors are printed and the loop continues. The
// loop exits on EOF, on "exit"/"quit" or when ctx is done.
func runREPL(ctx context.Context, reader *bufio.Reader, cmds []command, loggedIn func() bool, statusFn func() string) {
	index := make(map[string]command, len(cmds))
	for _, c := range cmds {
		index[c.name] = c
	}

	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("ch %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printlnFn(helpText(cmds, loggedIn()))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := index[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if c.auth != loggedIn() {
			if c.auth {
				printlnFn("Please log in first.")
			} else {
				printlnFn("Please log out first.")
			}
			continue
		}

		if err := c.run(ctx, args); err != nil {
			printlnFn("Error:", describe(err))
		}
	}
}

func helpText(cmds []command, loggedIn bool) string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, c := range cmds {
		if c.auth != loggedIn {
			continue
		}
		b.WriteString("\n  " + c.name)
		if c.usage != "" {
			b.WriteString(" " + c.usage)
		}
	}
	b.WriteString("\n  help\n  exit")
	return b.String()
}
