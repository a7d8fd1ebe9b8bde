package report

import (
	"context"

	"github.com/medicshift/shift-report-backend/internal/pkg/sse"
)

// Event names published on sse.TopicReports.
const (
	EventShiftsUpdated = "shifts_updated"
)

type ReportService interface {
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
	Months(ctx context.Context) (MonthsResponse, error)

	// Refresh reloads shift rows from the datastore.
	Refresh(ctx context.Context) error
	// Invalidate drops cached rows and tells subscribers to recompute.
	Invalidate(ctx context.Context)
	Subscribe(ctx context.Context) (<-chan sse.Event, func())
}
