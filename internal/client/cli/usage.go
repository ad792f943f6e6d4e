package cli

import (
	"context"
	"fmt"
	"strings"
)

// Usage prints the last seven days of activity, oldest first.
func (a *App) Usage(ctx context.Context) error {
	w, err := a.store.GetWeeklyUsage(ctx, a.email())
	if err != nil {
		return err
	}
	for i := range w.Labels {
		printlnFn(fmt.Sprintf("%s %s %4d min %s", w.Labels[i], w.Dates[i], w.Data[i], strings.Repeat("#", min(w.Data[i], 60))))
	}
	printlnFn(fmt.Sprintf("Total: %d min", w.Total()))
	return nil
}

// Report mails the weekly report for the signed-in user.
func (a *App) Report(ctx context.Context) error {
	resp, err := a.reports.SendWeeklyReport(ctx, a.email())
	if err != nil {
		return err
	}
	if resp.Message != "" {
		printlnFn(resp.Message)
	}
	if resp.ChartURL != "" {
		printlnFn("Chart:", resp.ChartURL)
	}
	return nil
}
