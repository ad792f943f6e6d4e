// Package mailer renders and delivers the RetailMediaAI transactional mail:
// verification codes, welcome notes, password reset links and the weekly
// activity report. Without a Sender every message is logged and reported as
// simulated.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/logging"
)

// Kind labels a message for logs and metrics.
type Kind string

const (
	KindOTP           Kind = "otp"
	KindWelcome       Kind = "welcome"
	KindPasswordReset Kind = "password_reset"
	KindWeeklyReport  Kind = "weekly_report"
)

const (
	SubjectOTP           = "Your Verification Code"
	SubjectWelcome       = "Take a deep breath. Designing just got easy. ☕✨"
	SubjectPasswordReset = "Reset your RetailMediaAI password 🔐"
	SubjectWeeklyReport  = "Your Weekly RetailMediaAI Report 🚀"
)

// Delivery outcomes passed to a Recorder.
const (
	StatusSent      = "sent"
	StatusSimulated = "simulated"
	StatusFailed    = "failed"
)

// ErrSendFailed wraps relay errors other than an unknown mailbox.
var ErrSendFailed = errors.New("send failed")

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Message is a rendered email.
type Message struct {
	Kind    Kind
	To      string
	Subject string
	HTML    string
}

// Sender delivers rendered messages and returns the Message-ID.
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
	Verify(ctx context.Context) error
}

// Recorder observes delivery outcomes.
type Recorder interface {
	MailSent(kind, status string)
}

// Result describes a delivery. Simulated is set when no Sender is configured.
type Result struct {
	Simulated bool
	MessageID string
}

type Mailer struct {
	sender   Sender
	baseURL  string
	logger   logging.Logger
	recorder Recorder
}

// New returns a Mailer. A nil sender simulates delivery; a nil recorder is
// allowed.
func New(sender Sender, baseURL string, logger logging.Logger, recorder Recorder) *Mailer {
	return &Mailer{
		sender:   sender,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger.With("component", "mailer"),
		recorder: recorder,
	}
}

// Simulated reports whether messages are only logged.
func (m *Mailer) Simulated() bool {
	return m.sender == nil
}

// BaseURL is the public site URL used in links.
func (m *Mailer) BaseURL() string {
	return m.baseURL
}

// SendOTP mails a verification code. The relay is verified first; a failed
// check returns common.ErrMailUnavailable. An unknown recipient returns
// common.ErrEmailDoesNotExist and any other relay error ErrSendFailed.
func (m *Mailer) SendOTP(ctx context.Context, email, name, code string) (*Result, error) {
	if name == "" {
		name = "there"
	}
	msg, err := m.render(KindOTP, email, SubjectOTP, "otp.html", map[string]any{
		"AppName": common.AppName,
		"Name":    name,
		"Code":    code,
	})
	if err != nil {
		return nil, err
	}
	if m.Simulated() {
		return m.simulate(ctx, msg, "code", code), nil
	}

	if err := m.sender.Verify(ctx); err != nil {
		m.logger.Error(ctx, "smtp connection error", "error", err)
		m.record(KindOTP, StatusFailed)
		return nil, errors.Join(common.ErrMailUnavailable, err)
	}

	res, err := m.deliver(ctx, msg)
	if err != nil {
		if IsMailboxNotFound(err) {
			return nil, fmt.Errorf("%w: %v", common.ErrEmailDoesNotExist, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return res, nil
}

func (m *Mailer) SendWelcome(ctx context.Context, email, name string) (*Result, error) {
	if name == "" {
		name = "User"
	}
	msg, err := m.render(KindWelcome, email, SubjectWelcome, "welcome.html", map[string]any{
		"AppName":      common.AppName,
		"Name":         name,
		"LogoURL":      m.baseURL + "/logo.png",
		"DashboardURL": m.baseURL + "/dashboard",
	})
	if err != nil {
		return nil, err
	}
	if m.Simulated() {
		return m.simulate(ctx, msg), nil
	}
	return m.deliver(ctx, msg)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, email, resetURL string) (*Result, error) {
	msg, err := m.render(KindPasswordReset, email, SubjectPasswordReset, "reset.html", map[string]any{
		"AppName":  common.AppName,
		"ResetURL": resetURL,
	})
	if err != nil {
		return nil, err
	}
	if m.Simulated() {
		return m.simulate(ctx, msg, "link", resetURL), nil
	}
	return m.deliver(ctx, msg)
}

func (m *Mailer) SendWeeklyReport(ctx context.Context, email, chartURL, joke string) (*Result, error) {
	msg, err := m.render(KindWeeklyReport, email, SubjectWeeklyReport, "weekly.html", map[string]any{
		"AppName":      common.AppName,
		"ChartURL":     chartURL,
		"Joke":         joke,
		"DashboardURL": m.baseURL,
	})
	if err != nil {
		return nil, err
	}
	if m.Simulated() {
		return m.simulate(ctx, msg, "joke", joke, "chart_url", chartURL), nil
	}
	return m.deliver(ctx, msg)
}

func (m *Mailer) render(kind Kind, to, subject, name string, data any) (*Message, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return &Message{Kind: kind, To: to, Subject: subject, HTML: buf.String()}, nil
}

func (m *Mailer) simulate(ctx context.Context, msg *Message, extra ...any) *Result {
	args := append([]any{"kind", msg.Kind, "to", msg.To, "subject", msg.Subject}, extra...)
	m.logger.Warn(ctx, "smtp credentials not found, simulating email send", args...)
	m.record(msg.Kind, StatusSimulated)
	return &Result{Simulated: true}
}

func (m *Mailer) deliver(ctx context.Context, msg *Message) (*Result, error) {
	id, err := m.sender.Send(ctx, msg)
	if err != nil {
		m.logger.Error(ctx, "send mail", "kind", msg.Kind, "to", msg.To, "error", err)
		m.record(msg.Kind, StatusFailed)
		return nil, err
	}
	m.logger.Info(ctx, "message sent", "kind", msg.Kind, "to", msg.To, "message_id", id)
	m.record(msg.Kind, StatusSent)
	return &Result{MessageID: id}, nil
}

func (m *Mailer) record(kind Kind, status string) {
	if m.recorder != nil {
		m.recorder.MailSent(string(kind), status)
	}
}
