// Package httpapi exposes the RetailMediaAI server endpoints as JSON over
// HTTP, together with health and Prometheus metrics routes.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/logging"
	"github.com/dmitrijs2005/retailmedia/internal/server/mailer"
	"github.com/dmitrijs2005/retailmedia/internal/server/metrics"
)

// MailService renders and sends the transactional mail.
type MailService interface {
	SendOTP(ctx context.Context, email, name, code string) (*mailer.Result, error)
	SendWelcome(ctx context.Context, email, name string) (*mailer.Result, error)
	SendPasswordReset(ctx context.Context, email, resetURL string) (*mailer.Result, error)
	SendWeeklyReport(ctx context.Context, email, chartURL, joke string) (*mailer.Result, error)
	BaseURL() string
}

type SessionService interface {
	SignIn(ctx context.Context, email, password string) (*api.CredentialsResponse, error)
	Authenticate(ctx context.Context, token string) (*models.SessionUser, error)
}

type ExportService interface {
	Export(ctx context.Context, email string, cr models.Creative) (*api.ExportResponse, error)
}

// Server wraps an http.Server with the API routes.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
	metrics    *metrics.Metrics
	mail       MailService
	sessions   SessionService
	exports    ExportService
	now        func() time.Time
}

func New(addr string, logger logging.Logger, m *metrics.Metrics, mail MailService, sessions SessionService, exports ExportService) *Server {
	s := &Server{
		logger:   logger.With("component", "http"),
		metrics:  m,
		mail:     mail,
		sessions: sessions,
		exports:  exports,
		now:      time.Now,
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	handle := func(method, path, name string, h http.HandlerFunc) {
		mux.Handle(method+" "+path, s.metrics.Instrument(name, h))
	}

	handle(http.MethodPost, api.PathSendOTP, "send_otp", s.handleSendOTP)
	handle(http.MethodPost, api.PathWelcomeEmail, "welcome_email", s.handleWelcomeEmail)
	handle(http.MethodPost, api.PathForgotPassword, "forgot_password", s.handleForgotPassword)
	handle(http.MethodPost, api.PathWeeklyReport, "weekly_report", s.handleWeeklyReport)
	handle(http.MethodPost, api.PathSignIn, "sign_in", s.handleSignIn)
	handle(http.MethodPost, api.PathExportCreative, "export_creative", s.requireSession(s.handleExportCreative))
	handle(http.MethodGet, api.PathHealth, "health", healthHandler)
	mux.Handle(http.MethodGet+" "+api.PathMetrics, s.metrics.Handler())

	return mux
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server listen: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.httpServer.Shutdown(ctx)
}
