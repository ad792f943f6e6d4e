package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Theme(ctx context.Context, args []string) error
	AddCreative(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error
	Draft(ctx context.Context, args []string) error
	Usage(ctx context.Context) error
	Report(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, forgot, reset, exit"
	helpLoggedIn  = "Available commands: profile [edit], theme [light|dark|dynamic], add, (l)ist, show <id>, delete <id>, export <id>, share <id> <platform>, generate [style], draft [save], usage, report, logout, exit"
)

// runREPL reads commands from scanner until EOF, "exit" or "quit", and
// dispatches them to a. The prompt shows statusFn. Account commands are
// always available; the rest require a signed-in user.
//
// Handler errors are reported to the user and never stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rm %s> ", statusFn()))
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
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "forgot":
			err = a.Forgot(ctx)
		case "reset":
			err = a.Reset(ctx, args)

		case "logout", "profile", "theme", "add", "l", "list", "show", "delete",
			"export", "share", "generate", "draft", "usage", "report":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			err = dispatchSession(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}

func dispatchSession(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "profile":
		return a.Profile(ctx, args)
	case "theme":
		return a.Theme(ctx, args)
	case "add":
		return a.AddCreative(ctx)
	case "l", "list":
		return a.List(ctx)
	case "show":
		return a.Show(ctx, args)
	case "delete":
		return a.Delete(ctx, args)
	case "export":
		return a.Export(ctx, args)
	case "share":
		return a.Share(ctx, args)
	case "generate":
		return a.Generate(ctx, args)
	case "draft":
		return a.Draft(ctx, args)
	case "usage":
		return a.Usage(ctx)
	case "report":
		return a.Report(ctx)
	}
	return nil
}
