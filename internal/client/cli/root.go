package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if email := a.email(); email != "" {
		s = email + " "
	}
	if m := a.mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root starts the connectivity watcher and the REPL over stdin.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to RetailMediaAI CLI (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.api != nil && a.config != nil {
		go a.StartOnlineStatusWatcher(ctx, a.config.HeartbeatInterval)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
