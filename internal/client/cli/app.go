package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/client/client"
	"github.com/dmitrijs2005/retailmedia/internal/client/config"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/client/profilestore"
	"github.com/dmitrijs2005/retailmedia/internal/client/services"
	"github.com/dmitrijs2005/retailmedia/internal/logging"
	"github.com/dmitrijs2005/retailmedia/internal/repositories/kv"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Store is the part of profilestore.Store the commands use directly.
type Store interface {
	GetUserProfile(ctx context.Context, email string) (*models.UserProfile, error)
	SaveUserProfile(ctx context.Context, email string, u models.ProfileUpdate) error
	Theme(ctx context.Context, email string) (models.Theme, error)
	SaveCreative(ctx context.Context, email string, c models.Creative) error
	GetCreatives(ctx context.Context, email string) ([]models.Creative, error)
	GetCreativeByID(ctx context.Context, email, id string) (*models.Creative, error)
	DeleteCreative(ctx context.Context, email, id string) ([]models.Creative, error)
	SaveAutosave(ctx context.Context, email string, draft any) error
	GetAutosave(ctx context.Context, email string, dest any) (bool, error)
	GetWeeklyUsage(ctx context.Context, email string) (models.WeeklyUsage, error)
}

type reportSender interface {
	SendWeeklyReport(ctx context.Context, email string) (*api.WeeklyReportResponse, error)
}

type activityTracker interface {
	Start(ctx context.Context, email string)
	Stop()
}

type App struct {
	config   *config.Config
	store    Store
	accounts services.AccountService
	reports  reportSender
	api      client.Client
	tracker  activityTracker
	logger   logging.Logger
	session  *services.Session
	pending  *services.PendingRegistration
	Mode     Mode
	modeMu   sync.Mutex
	reader   *bufio.Reader
	closeFn  func() error
}

// NewApp opens the configured storage backend and wires the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repo, err := kv.Open(ctx, c.Storage, c.DSN)
	if err != nil {
		logger.Error(ctx, "error opening storage", "backend", c.Storage, "error", err)
		return nil, err
	}

	store := profilestore.New(repo, logger)
	apiClient := client.NewHTTPClient(c.ServerURL, nil)

	return &App{
		config:   c,
		store:    store,
		accounts: services.NewAccountService(store, apiClient, logger),
		reports:  services.NewReportService(store, apiClient, logger),
		api:      apiClient,
		tracker:  services.NewActivityTracker(store, c.HeartbeatInterval, nil, logger),
		logger:   logger.With("component", "cli"),
		reader:   bufio.NewReader(os.Stdin),
		closeFn:  repo.Close,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.modeMu.Unlock()

	if changed {
		printlnFn(fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) mode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.Mode
}

// Run blocks in the REPL until the user exits, then releases storage.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.tracker != nil {
			a.tracker.Stop()
		}
		if a.closeFn != nil {
			if err := a.closeFn(); err != nil {
				a.logger.Warn(ctx, "closing storage", "error", err)
			}
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) email() string {
	if a.session == nil {
		return ""
	}
	return a.session.User.Email
}

// StartOnlineStatusWatcher pings the server every interval and switches the
// mode on changes. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.checkOnline(ctx)
	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
