package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/medicshift/shift-report-backend/internal/domain/report"
	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
	"github.com/medicshift/shift-report-backend/internal/pkg/sse"
)

type ReportServiceImpl struct {
	shiftRepo  shift.ShiftRepository
	aggregator *shifttime.Aggregator
	hub        *sse.Hub
	logger     *slog.Logger
	now        func() time.Time

	mu      sync.RWMutex
	records []shifttime.ShiftRecord
	loaded  bool
	// generation is bumped by Invalidate; a load started under an older
	// generation must not store its rows.
	generation uint64
}

func NewReportService(shiftRepo shift.ShiftRepository, aggregator *shifttime.Aggregator, hub *sse.Hub) report.ReportService {
	return newReportService(shiftRepo, aggregator, hub, time.Now)
}

func newReportService(shiftRepo shift.ShiftRepository, aggregator *shifttime.Aggregator, hub *sse.Hub, now func() time.Time) *ReportServiceImpl {
	return &ReportServiceImpl{
		shiftRepo:  shiftRepo,
		aggregator: aggregator,
		hub:        hub,
		logger:     slog.Default().With("component", "report"),
		now:        now,
	}
}

// MonthlyReport aggregates the cached rows for the requested month. An empty
// month picks the newest month present in the data; "all" disables the month
// filter.
func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	records, err := s.load(ctx)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	months := s.aggregator.ExtractMonths(records)
	selected, err := selectMonth(req.Month, months)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	collector := &shifttime.Collector{}
	agg := s.aggregator.WithObserver(shifttime.MultiObserver(
		shifttime.NewSlogObserver(s.logger),
		collector,
	))
	filter := shifttime.Filter{Month: selected, Search: strings.TrimSpace(req.Search)}

	totals := agg.Aggregate(records, filter)
	// Aggregate already reported date diagnostics for these rows.
	selectedRecords := s.aggregator.WithObserver(shifttime.NopObserver).Select(records, filter)

	result := report.MonthlyReport{
		Months:        monthOptions(months),
		SelectedMonth: monthOption(selected),
		Search:        filter.Search,
		GeneratedAt:   s.now().In(s.aggregator.Location()).Format(time.RFC3339),
		TotalMinutes:  shifttime.SumMinutes(totals),
		Totals:        make([]report.MedicTotal, 0, len(totals)),
		Shifts:        make([]report.ShiftDetail, 0, len(selectedRecords)),
	}
	result.TotalHours = shifttime.FormatMinutes(result.TotalMinutes)

	for _, t := range shifttime.SortTotals(totals) {
		result.Totals = append(result.Totals, report.MedicTotal{
			MedicName: t.MedicName,
			Minutes:   t.Minutes,
			Hours:     t.Hours(),
		})
	}

	for _, r := range selectedRecords {
		text, source := r.DurationText()
		minutes := shifttime.ParseDuration(text)
		result.Shifts = append(result.Shifts, report.ShiftDetail{
			Row:        r.Row,
			MedicName:  r.MedicName,
			ShiftType:  r.ShiftType,
			DoctorName: r.DoctorName,
			Date:       r.Date,
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
			Duration:   text,
			Source:     string(source),
			Minutes:    minutes,
			Counted:    r.MedicName != "" && shifttime.IsCountable(minutes),
		})
	}

	if counts := collector.Counts(); len(counts) > 0 {
		result.Diagnostics = make(map[string]int, len(counts))
		for kind, n := range counts {
			result.Diagnostics[string(kind)] = n
		}
	}

	return result, nil
}

func (s *ReportServiceImpl) Months(ctx context.Context) (report.MonthsResponse, error) {
	records, err := s.load(ctx)
	if err != nil {
		return report.MonthsResponse{}, err
	}
	return report.MonthsResponse{Months: monthOptions(s.aggregator.ExtractMonths(records))}, nil
}

// Refresh reloads the rows and notifies subscribers when they changed.
func (s *ReportServiceImpl) Refresh(ctx context.Context) error {
	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	records, err := s.shiftRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", report.ErrReportUnavailable, err)
	}

	s.mu.Lock()
	if s.generation != gen {
		// Invalidated mid-read; the next load picks up the new rows.
		s.mu.Unlock()
		return nil
	}
	changed := !s.loaded || !sameRecords(s.records, records)
	s.records = records
	s.loaded = true
	s.mu.Unlock()

	if changed {
		s.logger.Info("Shift rows refreshed", "rows", len(records))
		s.publish()
	}
	return nil
}

func (s *ReportServiceImpl) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.records = nil
	s.loaded = false
	s.generation++
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "Shift cache invalidated")
	s.publish()
}

func (s *ReportServiceImpl) Subscribe(ctx context.Context) (<-chan sse.Event, func()) {
	return s.hub.Subscribe(sse.TopicReports)
}

func (s *ReportServiceImpl) publish() {
	if s.hub == nil {
		return
	}
	s.hub.Publish(sse.TopicReports, sse.Event{
		Topic: sse.TopicReports,
		Event: report.EventShiftsUpdated,
		Data:  map[string]string{"updated_at": s.now().UTC().Format(time.RFC3339)},
	})
}

func (s *ReportServiceImpl) load(ctx context.Context) ([]shifttime.ShiftRecord, error) {
	s.mu.RLock()
	if s.loaded {
		records := s.records
		s.mu.RUnlock()
		return records, nil
	}
	gen := s.generation
	s.mu.RUnlock()

	records, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", report.ErrReportUnavailable, err)
	}

	s.mu.Lock()
	if s.generation == gen {
		s.records = records
		s.loaded = true
	}
	s.mu.Unlock()
	return records, nil
}

func selectMonth(requested string, months []shifttime.Month) (shifttime.Month, error) {
	requested = strings.TrimSpace(requested)
	switch {
	case strings.EqualFold(requested, report.AllMonths):
		return shifttime.Month{}, nil
	case requested == "":
		if len(months) == 0 {
			return shifttime.Month{}, nil
		}
		return months[0], nil
	}
	return shifttime.ParseMonth(requested)
}

func monthOption(m shifttime.Month) report.MonthOption {
	if m.IsZero() {
		return report.MonthOption{Key: report.AllMonths, Label: "כל החודשים"}
	}
	return report.MonthOption{Key: m.String(), Label: m.Label()}
}

func monthOptions(months []shifttime.Month) []report.MonthOption {
	out := make([]report.MonthOption, 0, len(months))
	for _, m := range months {
		out = append(out, monthOption(m))
	}
	return out
}

func sameRecords(a, b []shifttime.ShiftRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
