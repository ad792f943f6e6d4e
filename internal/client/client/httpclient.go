package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/netx"
)

const defaultTimeout = 30 * time.Second

// HTTPClient talks JSON to the RetailMediaAI server at baseURL.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for baseURL. A nil httpClient gets a
// default with a 30s timeout.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *HTTPClient) SendOTP(ctx context.Context, email, name string) (*api.OTPResponse, error) {
	out := &api.OTPResponse{}
	if err := c.post(ctx, api.PathSendOTP, "", api.MailRequest{Email: email, Name: name}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SendWelcomeEmail(ctx context.Context, email, name string) (*api.MailResponse, error) {
	out := &api.MailResponse{}
	if err := c.post(ctx, api.PathWelcomeEmail, "", api.MailRequest{Email: email, Name: name}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (*api.MailResponse, error) {
	out := &api.MailResponse{}
	if err := c.post(ctx, api.PathForgotPassword, "", api.MailRequest{Email: email}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SendWeeklyReport(ctx context.Context, email string, usage models.WeeklyUsage) (*api.WeeklyReportResponse, error) {
	req := api.WeeklyReportRequest{
		Email:     email,
		UsageData: &api.UsageData{Labels: usage.Labels, Data: usage.Data},
	}
	out := &api.WeeklyReportResponse{}
	if err := c.post(ctx, api.PathWeeklyReport, "", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*api.CredentialsResponse, error) {
	out := &api.CredentialsResponse{}
	if err := c.post(ctx, api.PathSignIn, "", api.CredentialsRequest{Email: email, Password: password}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ExportCreative(ctx context.Context, token, email string, cr models.Creative) (*api.ExportResponse, error) {
	out := &api.ExportResponse{}
	if err := c.post(ctx, api.PathExportCreative, token, api.ExportRequest{Email: email, Creative: cr}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.mapError(netx.DoJSON(ctx, c.http, http.MethodGet, c.baseURL+api.PathHealth, "", nil, nil))
}

func (c *HTTPClient) post(ctx context.Context, path, token string, in, out any) error {
	return c.mapError(netx.DoJSON(ctx, c.http, http.MethodPost, c.baseURL+path, token, in, out))
}

// mapError converts transport failures and error bodies to package errors.
func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	var se *netx.StatusError
	if !errors.As(err, &se) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return errors.Join(ErrUnavailable, err)
	}

	var body api.ErrorResponse
	_ = json.Unmarshal(se.Body, &body)

	apiErr := &APIError{StatusCode: se.Code, Message: body.Error}
	switch {
	case se.Code == http.StatusUnauthorized:
		apiErr.wrapped = ErrUnauthorized
	case body.Error == common.MsgEmailDoesNotExist:
		apiErr.wrapped = common.ErrEmailDoesNotExist
	case body.Error == common.MsgMailUnavailable:
		apiErr.wrapped = common.ErrMailUnavailable
	case se.Code == http.StatusBadGateway, se.Code == http.StatusServiceUnavailable, se.Code == http.StatusGatewayTimeout:
		apiErr.wrapped = ErrUnavailable
	}
	return apiErr
}
