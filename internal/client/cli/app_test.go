package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/client/services"
)

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestIsLoggedIn(t *testing.T) {
	app := &App{}
	if app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == false without a session")
	}
	app.session = &services.Session{User: models.SessionUser{Email: "a@x.com"}}
	if !app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == true with a session")
	}
}

func TestSetMode_ChangesAndPrintsOnce(t *testing.T) {
	out := captureOutput(t)
	app := &App{}

	app.setMode(ModeOnline)
	if app.mode() != ModeOnline {
		t.Fatalf("expected mode %q, got %q", ModeOnline, app.mode())
	}
	app.setMode(ModeOnline)
	app.setMode(ModeOffline)

	if len(*out) != 2 {
		t.Fatalf("expected two mode change messages, got %v", *out)
	}
}

type pingClient struct {
	fakeClient
	err error
}

func (p *pingClient) Ping(context.Context) error { return p.err }

func TestCheckOnline(t *testing.T) {
	captureOutput(t)

	c := &pingClient{}
	app := &App{api: c}

	app.checkOnline(context.Background())
	if app.mode() != ModeOnline {
		t.Fatalf("want online, got %q", app.mode())
	}

	c.err = errors.New("down")
	app.checkOnline(context.Background())
	if app.mode() != ModeOffline {
		t.Fatalf("want offline, got %q", app.mode())
	}
}

func TestStartOnlineStatusWatcher_StopsWithContext(t *testing.T) {
	captureOutput(t)
	app := &App{api: &pingClient{}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestGetStatus(t *testing.T) {
	a := &App{}
	if got := a.getStatus(); got != "" {
		t.Fatalf("want empty status, got %q", got)
	}

	a.session = &services.Session{User: models.SessionUser{Email: "a@x.com"}}
	if got := a.getStatus(); got != "(a@x.com )" {
		t.Fatalf("got %q", got)
	}

	a.Mode = ModeOnline
	if got := a.getStatus(); got != "(a@x.com online)" {
		t.Fatalf("got %q", got)
	}
}
