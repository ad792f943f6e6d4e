package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/logging"
)

// DefaultHeartbeatInterval is one counted minute.
const DefaultHeartbeatInterval = time.Minute

// FocusProbe reports whether the user is currently active.
type FocusProbe func() bool

// ActivityTracker adds a minute of usage to the store on every heartbeat
// while the focus probe reports activity.
type ActivityTracker struct {
	store    ProfileStore
	interval time.Duration
	focused  FocusProbe
	logger   logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewActivityTracker returns a stopped tracker. A nil probe counts every
// heartbeat; a non-positive interval uses DefaultHeartbeatInterval.
func NewActivityTracker(store ProfileStore, interval time.Duration, focused FocusProbe, logger logging.Logger) *ActivityTracker {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	if focused == nil {
		focused = func() bool { return true }
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &ActivityTracker{store: store, interval: interval, focused: focused, logger: logger.With("component", "activity")}
}

// Start begins tracking email, replacing any previous run. The tracker stops
// when ctx is done or Stop is called.
func (t *ActivityTracker) Start(ctx context.Context, email string) {
	t.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	t.mu.Lock()
	t.cancel, t.done = cancel, done
	t.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		t.logger.Debug(ctx, "activity tracking started", "email", email)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if t.focused() {
					t.store.UpdateUsageTime(ctx, email)
				}
			}
		}
	}()
}

// Stop ends the current run and waits for it to exit.
func (t *ActivityTracker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
