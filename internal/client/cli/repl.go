package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
	Menu(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit". When showPrompt is set, the prompt carries statusFn().
//
//	Not logged in: help, login [email], verify [token], open <path>, exit
//	Logged in:     help, whoami, menu, open <path>, logout, exit
//
// Handler errors are printed inline and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, showPrompt bool) {
	for {
		if showPrompt {
			fmt.Printf("loopa %s> ", statusFn())
		}
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, menu, open <path>, logout, exit")
			} else {
				printlnFn("Available commands: login [email], verify [token], open <path>, exit")
			}

		case "login":
			err = a.Login(ctx, args)

		case "verify":
			err = a.Verify(ctx, args)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "menu":
			err = a.Menu(ctx)

		case "open":
			err = a.Open(ctx, args)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
