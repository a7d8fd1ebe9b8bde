package cron

import (
	"context"
	"time"

	"github.com/medicshift/shift-report-backend/internal/domain/report"
)

// ReportJobs keeps the report cache in step with edits made directly in the
// spreadsheet.
type ReportJobs struct {
	reportService report.ReportService
}

func NewReportJobs(reportService report.ReportService) *ReportJobs {
	return &ReportJobs{reportService: reportService}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) error {
	return scheduler.AddJob(Job{
		Name:      "refresh_shift_report",
		Interval:  interval,
		Fn:        j.RefreshReports,
		Immediate: true,
	})
}

// RefreshReports reloads shift rows; subscribers are told only when rows changed.
func (j *ReportJobs) RefreshReports(ctx context.Context) error {
	return j.reportService.Refresh(ctx)
}
