package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/client/client"
	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/logging"
)

// ReportService mails the weekly usage report.
type ReportService struct {
	store  ProfileStore
	client client.Client
	logger logging.Logger
}

func NewReportService(store ProfileStore, c client.Client, logger logging.Logger) *ReportService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ReportService{store: store, client: c, logger: logger.With("component", "report")}
}

// SendWeeklyReport posts the last seven days of usage and, once the server
// accepted the report, clears the reported days.
func (r *ReportService) SendWeeklyReport(ctx context.Context, email string) (*api.WeeklyReportResponse, error) {
	if email == "" {
		return nil, common.ErrEmptyEmail
	}

	usage, err := r.store.GetWeeklyUsage(ctx, email)
	if err != nil {
		return nil, err
	}

	resp, err := r.client.SendWeeklyReport(ctx, email, usage)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return resp, errors.New("weekly report was not accepted")
	}

	r.store.ClearUsageDates(ctx, email, usage.Dates)
	r.logger.Info(ctx, "weekly report sent", "email", email, "minutes", usage.Total())
	return resp, nil
}
