package profilestore

import (
	"context"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
)

const (
	dateLayout = "2006-01-02"
	usageDays  = 7
)

// UpdateUsageTime adds one minute to today's (UTC) counter. Failures are
// logged and dropped.
func (s *Store) UpdateUsageTime(ctx context.Context, email string) {
	email = NormalizeEmail(email)
	if email == "" {
		return
	}
	today := s.now().UTC().Format(dateLayout)

	err := updateJSON(ctx, s.repo, UsageKey(email), func(stats *models.UsageStats) error {
		if *stats == nil {
			*stats = models.UsageStats{}
		}
		(*stats)[today]++
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "failed to update usage stats", "email", email, "error", err)
	}
}

// GetWeeklyUsage returns the last seven UTC days ending today, oldest first,
// with zero minutes for days without activity.
func (s *Store) GetWeeklyUsage(ctx context.Context, email string) (models.WeeklyUsage, error) {
	w := models.WeeklyUsage{Labels: []string{}, Data: []int{}, Dates: []string{}}

	email = NormalizeEmail(email)
	if email == "" {
		return w, nil
	}

	var stats models.UsageStats
	if _, err := s.getJSON(ctx, UsageKey(email), &stats); err != nil {
		return w, err
	}

	now := s.now().UTC()
	for i := usageDays - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		date := d.Format(dateLayout)
		w.Labels = append(w.Labels, d.Weekday().String()[:3])
		w.Data = append(w.Data, stats[date])
		w.Dates = append(w.Dates, date)
	}
	return w, nil
}

// ClearUsageDates deletes the counters of dates, typically after they were
// reported. Failures are logged and dropped.
func (s *Store) ClearUsageDates(ctx context.Context, email string, dates []string) {
	email = NormalizeEmail(email)
	if email == "" || len(dates) == 0 {
		return
	}

	err := updateJSON(ctx, s.repo, UsageKey(email), func(stats *models.UsageStats) error {
		if *stats == nil {
			*stats = models.UsageStats{}
		}
		for _, d := range dates {
			delete(*stats, d)
		}
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "failed to clear usage stats", "email", email, "error", err)
	}
}
