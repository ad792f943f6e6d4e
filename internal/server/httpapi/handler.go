package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/netx"
	"github.com/dmitrijs2005/retailmedia/internal/server/mailer"
	"github.com/dmitrijs2005/retailmedia/internal/server/report"
	"github.com/dmitrijs2005/retailmedia/internal/server/services"
)

// maxBody bounds request bodies; exports carry data-URI images.
const maxBody = 32 << 20

const otpDigits = 6

// ResetLink builds the password reset URL sent by mail. The token is the
// request time in Unix milliseconds.
func ResetLink(baseURL, email string, now time.Time) string {
	return strings.TrimRight(baseURL, "/") + "/reset-password?email=" + netx.EncodeURIComponent(email) +
		"&token=" + strconv.FormatInt(now.UnixMilli(), 10)
}

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.MailRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, common.MsgEmailRequired)
		return
	}

	code, err := common.MakeOTP(otpDigits)
	if err != nil {
		s.logger.Error(ctx, "generate otp", "error", err)
		writeError(w, http.StatusInternalServerError, common.MsgInternal)
		return
	}

	res, err := s.mail.SendOTP(ctx, req.Email, req.Name, code)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrMailUnavailable):
		writeError(w, http.StatusInternalServerError, common.MsgMailUnavailable)
		return
	case errors.Is(err, common.ErrEmailDoesNotExist):
		writeError(w, http.StatusBadRequest, common.MsgEmailDoesNotExist)
		return
	case errors.Is(err, mailer.ErrSendFailed):
		writeError(w, http.StatusBadRequest, common.MsgOTPSendFailed)
		return
	default:
		s.logger.Error(ctx, "send otp", "error", err)
		writeError(w, http.StatusInternalServerError, common.MsgInternal)
		return
	}

	writeJSON(w, http.StatusOK, api.OTPResponse{Success: true, OTP: code, Simulated: res.Simulated})
}

func (s *Server) handleWelcomeEmail(w http.ResponseWriter, r *http.Request) {
	var req api.MailRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, common.MsgEmailRequired)
		return
	}

	res, err := s.mail.SendWelcome(r.Context(), req.Email, req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, common.MsgSendFailed)
		return
	}
	writeJSON(w, http.StatusOK, api.MailResponse{Success: true, Simulated: res.Simulated, MessageID: res.MessageID})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req api.MailRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, common.MsgEmailRequired)
		return
	}

	link := ResetLink(s.mail.BaseURL(), req.Email, s.now())
	res, err := s.mail.SendPasswordReset(r.Context(), req.Email, link)
	if err != nil {
		writeError(w, http.StatusInternalServerError, common.MsgSendFailed)
		return
	}
	writeJSON(w, http.StatusOK, api.MailResponse{Success: true, Simulated: res.Simulated})
}

func (s *Server) handleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.WeeklyReportRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, common.MsgReportEmail)
		return
	}

	chartURL, err := report.ChartURL(report.NewChartConfig(report.Normalize(req.UsageData)))
	if err != nil {
		s.logger.Error(ctx, "build chart url", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	res, err := s.mail.SendWeeklyReport(ctx, req.Email, chartURL, report.RandomJoke())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := api.WeeklyReportResponse{Success: true, EmailSent: !res.Simulated, ChartURL: chartURL}
	if res.Simulated {
		resp.Message = report.MockMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CredentialsRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.sessions.SignIn(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrPhoneSignIn):
		writeError(w, http.StatusUnauthorized, common.MsgPhoneSignIn)
		return
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, common.MsgUnauthorized)
		return
	default:
		s.logger.Error(ctx, "sign in", "error", err)
		writeError(w, http.StatusInternalServerError, common.MsgInternal)
		return
	}

	s.logger.Info(ctx, "signed in", "email", resp.User.Email)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExportCreative(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := sessionUser(ctx)

	var req api.ExportRequest
	if !s.decode(w, r, &req) {
		return
	}
	email := req.Email
	if email == "" {
		email = user.Email
	}
	if !strings.EqualFold(email, user.Email) {
		writeError(w, http.StatusUnauthorized, common.MsgUnauthorized)
		return
	}

	resp, err := s.exports.Export(ctx, email, req.Creative)
	switch {
	case err == nil:
		s.metrics.CreativeExported("ok")
	case errors.Is(err, common.ErrEmptyEmail):
		writeError(w, http.StatusBadRequest, common.MsgEmailRequired)
		return
	case errors.Is(err, models.ErrInvalidDataURI):
		writeError(w, http.StatusBadRequest, common.MsgInvalidImage)
		return
	default:
		s.logger.Error(ctx, "export creative", "error", err, "id", req.Creative.ID)
		s.metrics.CreativeExported("error")
		writeError(w, http.StatusInternalServerError, common.MsgInternal)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(dst); err != nil {
		s.logger.Warn(r.Context(), "bad request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, common.MsgInvalidRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, api.ErrorResponse{Error: msg})
}
