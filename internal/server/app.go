// Package server wires the RetailMediaAI HTTP server: mail delivery, session
// tokens, creative export and metrics, with graceful shutdown.
package server

import (
	"context"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/logging"
	"github.com/dmitrijs2005/retailmedia/internal/server/config"
	"github.com/dmitrijs2005/retailmedia/internal/server/httpapi"
	"github.com/dmitrijs2005/retailmedia/internal/server/mailer"
	"github.com/dmitrijs2005/retailmedia/internal/server/metrics"
	"github.com/dmitrijs2005/retailmedia/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

const metricsNamespace = "retailmedia"

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
	mail   *mailer.Mailer
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	m := metrics.New(metricsNamespace)

	var sender mailer.Sender
	if cfg.MailConfigured() {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
		})
	}
	mail := mailer.New(sender, cfg.BaseURL, logger, m)

	sessions := services.NewSessionService(cfg)
	exports := services.NewExportService(cfg, logger)

	srv := httpapi.New(cfg.ListenAddr, logger, m, mail, sessions, exports)

	return &App{config: cfg, logger: logger.With("app", common.AppName), server: srv, mail: mail}, nil
}

// Run serves until ctx is cancelled or the listener fails, then shuts the
// server down.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...", "addr", app.config.ListenAddr, "mail_simulated", app.mail.Simulated())

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Info(ctx, "shutdown signal received")
	case runErr = <-errCh:
		if runErr != nil {
			app.logger.Error(ctx, "http server stopped", "error", runErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown", "error", err)
	}

	return runErr
}
