package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	ShowVersion(ctx context.Context) error
	ShowConfig(ctx context.Context) error
	Configure(ctx context.Context, args []string) error
	Request(ctx context.Context, args []string) error
	ShowContext(ctx context.Context) error
}

// runREPL reads commands from scanner until EOF or "exit"/"quit".
// Command errors have already been printed by the handlers and are
// not fatal to the loop.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("smaers> ")
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			_ = dispatch(ctx, a, parts)
		}
	}
}

func dispatch(ctx context.Context, a execIface, parts []string) error {
	if len(parts) == 0 {
		printHelp()
		return errUsage
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		printHelp()
		return nil
	case "version":
		return a.ShowVersion(ctx)
	case "config":
		return a.ShowConfig(ctx)
	case "configure":
		return a.Configure(ctx, args)
	case "request":
		return a.Request(ctx, args)
	case "context":
		return a.ShowContext(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return errUsage
	}
}

func printHelp() {
	printlnFn("Available commands: version, config, configure, request, context, exit")
}
