package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeSMTPClient struct {
	sent    []*mail.Msg
	dialed  bool
	closed  bool
	sendErr error
	dialErr error
}

func (f *fakeSMTPClient) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, messages...)
	return nil
}

func (f *fakeSMTPClient) DialWithContext(context.Context) error {
	f.dialed = true
	return f.dialErr
}

func (f *fakeSMTPClient) Close() error {
	f.closed = true
	return nil
}

func stubSMTPClient(t *testing.T, c *fakeSMTPClient) *SMTPConfig {
	t.Helper()
	var got SMTPConfig
	orig := newSMTPClient
	newSMTPClient = func(cfg SMTPConfig) (smtpClient, error) {
		got = cfg
		return c, nil
	}
	t.Cleanup(func() { newSMTPClient = orig })
	return &got
}

func TestSMTPSender_Send(t *testing.T) {
	fc := &fakeSMTPClient{}
	got := stubSMTPClient(t, fc)

	s := NewSMTPSender(SMTPConfig{Host: "smtp.example", Port: 587, Username: "bot@example.com", Password: "pw"})
	id, err := s.Send(context.Background(), &Message{To: "jane@example.com", Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, fc.sent, 1)
	assert.Equal(t, "bot@example.com", got.From, "From defaults to the username")
	assert.Equal(t, []string{"Hi"}, fc.sent[0].GetGenHeader(mail.HeaderSubject))
}

func TestSMTPSender_SendErrors(t *testing.T) {
	fc := &fakeSMTPClient{sendErr: errors.New("550 no such user")}
	stubSMTPClient(t, fc)

	s := NewSMTPSender(SMTPConfig{Host: "h", Port: 25, Username: "bot@example.com", From: "no-reply@retailmedia.ai"})

	_, err := s.Send(context.Background(), &Message{To: "jane@example.com"})
	require.Error(t, err)
	assert.True(t, IsMailboxNotFound(err))

	_, err = s.Send(context.Background(), &Message{To: "not an address"})
	require.Error(t, err)
}

func TestSMTPSender_Verify(t *testing.T) {
	fc := &fakeSMTPClient{}
	stubSMTPClient(t, fc)

	s := NewSMTPSender(SMTPConfig{Host: "h", Username: "u@example.com"})
	require.NoError(t, s.Verify(context.Background()))
	assert.True(t, fc.dialed)
	assert.True(t, fc.closed)

	fc2 := &fakeSMTPClient{dialErr: errors.New("refused")}
	stubSMTPClient(t, fc2)
	require.Error(t, s.Verify(context.Background()))
	assert.False(t, fc2.closed)
}
