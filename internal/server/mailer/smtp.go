package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/wneessen/go-mail"
)

// SMTPConfig describes the outgoing mail relay. From defaults to Username.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpClient interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
	DialWithContext(ctx context.Context) error
	Close() error
}

var newSMTPClient = func(cfg SMTPConfig) (smtpClient, error) {
	return mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
}

// SMTPSender delivers messages through an SMTP relay using go-mail. A new
// connection is opened per message.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) (string, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(common.AppName, s.cfg.From); err != nil {
		return "", fmt.Errorf("sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return "", fmt.Errorf("recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetMessageID()
	m.SetDate()
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	c, err := newSMTPClient(s.cfg)
	if err != nil {
		return "", err
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return "", err
	}
	return m.GetMessageID(), nil
}

// Verify opens and closes a connection to check the relay and credentials.
func (s *SMTPSender) Verify(ctx context.Context) error {
	c, err := newSMTPClient(s.cfg)
	if err != nil {
		return err
	}
	if err := c.DialWithContext(ctx); err != nil {
		return err
	}
	return c.Close()
}

// IsMailboxNotFound reports whether err is the relay rejecting an unknown
// recipient (SMTP 550 or a "doesn't exist" reply).
func IsMailboxNotFound(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "550") || strings.Contains(s, "doesn't exist")
}
