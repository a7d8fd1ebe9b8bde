package report

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/medicshift/shift-report-backend/internal/domain/report"
	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/pkg/sheets"
	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
	"github.com/medicshift/shift-report-backend/internal/pkg/sse"
	"github.com/medicshift/shift-report-backend/internal/pkg/validator"
	sheetrepo "github.com/medicshift/shift-report-backend/internal/repository/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShiftSheet = "Shift_card"

var testNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func loadReportTestRows(store *sheets.MemoryStore) {
	store.Load(testShiftSheet, [][]string{
		{"ts", "medic", "type", "doctor", "date", "start", "end", "calculated", "reported"},
		{"", "דנה", "דמו", "כהן", "05/01/2024", "08:00", "10:00", "02:00", ""},
		{"", "דנה", "דמו", "כהן", "20/01/2024", "08:00", "16:30", "08:30", ""},
		{"", "אבי", "דמו", "כהן", "21/01/2024", "08:00", "09:00", "01:00", "25:00"},
		{"", "דנה", "דמו", "כהן", "03/02/2024", "08:00", "13:00", "05:00", ""},
		{"", "", "דמו", "כהן", "04/02/2024", "08:00", "09:00", "01:00", ""},
		{"", "דנה", "דמו", "כהן", "לא תאריך", "08:00", "09:00", "01:00", ""},
	})
}

func newReportTestService(t *testing.T) (*ReportServiceImpl, *sheets.MemoryStore, *sse.Hub) {
	t.Helper()
	store := sheets.NewMemoryStore()
	loadReportTestRows(store)
	hub := sse.NewHub()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)

	svc := newReportService(
		sheetrepo.NewShiftRepository(store, testShiftSheet),
		shifttime.NewAggregator(loc, nil),
		hub,
		func() time.Time { return testNow },
	)
	return svc, store, hub
}

func TestReportService_MonthlyReport_DefaultsToNewestMonth(t *testing.T) {
	svc, _, _ := newReportTestService(t)

	result, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, report.MonthOption{Key: "2024-02", Label: "פברואר 2024"}, result.SelectedMonth)
	assert.Equal(t, []report.MonthOption{
		{Key: "2024-02", Label: "פברואר 2024"},
		{Key: "2024-01", Label: "ינואר 2024"},
	}, result.Months)
	assert.Equal(t, []report.MedicTotal{{MedicName: "דנה", Minutes: 300, Hours: "5:00"}}, result.Totals)
	assert.Equal(t, 300, result.TotalMinutes)
	assert.Equal(t, "5:00", result.TotalHours)
	assert.Len(t, result.Shifts, 2)
	assert.Equal(t, 1, result.Diagnostics[string(shifttime.DiagMissingMedic)])
	assert.Equal(t, 1, result.Diagnostics[string(shifttime.DiagUnparseableDate)])
	assert.Equal(t, testNow.In(time.FixedZone("IST", 2*3600)).Format(time.RFC3339), result.GeneratedAt)
}

func TestReportService_MonthlyReport_ByLabelExcludesSuspicious(t *testing.T) {
	svc, _, _ := newReportTestService(t)

	result, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{Month: "ינואר 2024"})
	require.NoError(t, err)

	assert.Equal(t, []report.MedicTotal{{MedicName: "דנה", Minutes: 630, Hours: "10:30"}}, result.Totals)
	assert.Equal(t, 1, result.Diagnostics[string(shifttime.DiagSuspiciousDuration)])

	require.Len(t, result.Shifts, 3)
	suspicious := result.Shifts[2]
	assert.Equal(t, "אבי", suspicious.MedicName)
	assert.Equal(t, "25:00", suspicious.Duration)
	assert.Equal(t, string(shifttime.SourceReported), suspicious.Source)
	assert.Equal(t, 1500, suspicious.Minutes)
	assert.False(t, suspicious.Counted)
}

func TestReportService_MonthlyReport_AllMonthsAndSearch(t *testing.T) {
	svc, _, _ := newReportTestService(t)
	ctx := context.Background()

	all, err := svc.MonthlyReport(ctx, report.MonthlyReportRequest{Month: "all"})
	require.NoError(t, err)
	assert.Equal(t, report.AllMonths, all.SelectedMonth.Key)
	// Without a month filter the undated row counts too.
	assert.Equal(t, []report.MedicTotal{{MedicName: "דנה", Minutes: 990, Hours: "16:30"}}, all.Totals)

	searched, err := svc.MonthlyReport(ctx, report.MonthlyReportRequest{Month: "2024-01", Search: " אב "})
	require.NoError(t, err)
	assert.Equal(t, "אב", searched.Search)
	assert.Empty(t, searched.Totals)
	assert.Len(t, searched.Shifts, 1)
}

func TestReportService_MonthlyReport_InvalidMonth(t *testing.T) {
	svc, _, _ := newReportTestService(t)

	_, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{Month: "Smarch 2024"})

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestReportService_MonthlyReport_EmptySheet(t *testing.T) {
	hub := sse.NewHub()
	svc := newReportService(
		sheetrepo.NewShiftRepository(sheets.NewMemoryStore(), testShiftSheet),
		shifttime.NewAggregator(time.UTC, nil),
		hub,
		func() time.Time { return testNow },
	)

	result, err := svc.MonthlyReport(context.Background(), report.MonthlyReportRequest{})
	require.NoError(t, err)
	assert.Empty(t, result.Months)
	assert.Empty(t, result.Totals)
	assert.Equal(t, report.AllMonths, result.SelectedMonth.Key)
	assert.Equal(t, "0:00", result.TotalHours)
}

func TestReportService_CachesUntilInvalidated(t *testing.T) {
	svc, store, hub := newReportTestService(t)
	ctx := context.Background()

	events, cleanup := hub.Subscribe(sse.TopicReports)
	defer cleanup()

	_, err := svc.Months(ctx)
	require.NoError(t, err)
	_, err = svc.MonthlyReport(ctx, report.MonthlyReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Reads())

	require.NoError(t, store.AppendRow(ctx, testShiftSheet, []string{"", "משה", "דמו", "כהן", "01/03/2024", "08:00", "09:00", "01:00"}))
	svc.Invalidate(ctx)

	select {
	case ev := <-events:
		assert.Equal(t, report.EventShiftsUpdated, ev.Event)
	case <-time.After(time.Second):
		t.Fatal("expected shifts_updated event")
	}

	months, err := svc.Months(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Reads())
	assert.Equal(t, "2024-03", months.Months[0].Key)
}

func TestReportService_RefreshPublishesOnlyOnChange(t *testing.T) {
	svc, store, hub := newReportTestService(t)
	ctx := context.Background()

	events, cleanup := hub.Subscribe(sse.TopicReports)
	defer cleanup()

	require.NoError(t, svc.Refresh(ctx))
	require.Len(t, events, 1)
	<-events

	require.NoError(t, svc.Refresh(ctx))
	assert.Len(t, events, 0)

	require.NoError(t, store.AppendRow(ctx, testShiftSheet, []string{"", "משה"}))
	require.NoError(t, svc.Refresh(ctx))
	assert.Len(t, events, 1)
}

// blockingShiftRepo holds the first List call until release is closed.
type blockingShiftRepo struct {
	shift.ShiftRepository
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingShiftRepo) List(ctx context.Context) ([]shifttime.ShiftRecord, error) {
	records, err := r.ShiftRepository.List(ctx)
	r.once.Do(func() {
		close(r.started)
		<-r.release
	})
	return records, err
}

func TestReportService_InvalidateDuringLoad(t *testing.T) {
	store := sheets.NewMemoryStore()
	store.Load(testShiftSheet, [][]string{
		{"ts", "medic", "type", "doctor", "date", "start", "end", "calculated", "reported"},
		{"", "דנה", "דמו", "כהן", "05/01/2024", "08:00", "10:00", "02:00", ""},
	})
	repo := &blockingShiftRepo{
		ShiftRepository: sheetrepo.NewShiftRepository(store, testShiftSheet),
		started:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	svc := newReportService(repo, shifttime.NewAggregator(time.UTC, nil), sse.NewHub(), func() time.Time { return testNow })
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Months(ctx)
		done <- err
	}()
	<-repo.started

	require.NoError(t, store.AppendRow(ctx, testShiftSheet, []string{"", "דנה", "דמו", "כהן", "06/01/2024", "08:00", "11:00", "03:00"}))
	svc.Invalidate(ctx)
	close(repo.release)
	require.NoError(t, <-done)

	result, err := svc.MonthlyReport(ctx, report.MonthlyReportRequest{Month: report.AllMonths})
	require.NoError(t, err)
	assert.Equal(t, 300, result.TotalMinutes)
}

func TestReportService_RefreshDuringInvalidateKeepsNewRows(t *testing.T) {
	store := sheets.NewMemoryStore()
	store.Load(testShiftSheet, [][]string{
		{"ts", "medic", "type", "doctor", "date", "start", "end", "calculated", "reported"},
		{"", "דנה", "דמו", "כהן", "05/01/2024", "08:00", "10:00", "02:00", ""},
	})
	repo := &blockingShiftRepo{
		ShiftRepository: sheetrepo.NewShiftRepository(store, testShiftSheet),
		started:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	svc := newReportService(repo, shifttime.NewAggregator(time.UTC, nil), sse.NewHub(), func() time.Time { return testNow })
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- svc.Refresh(ctx) }()
	<-repo.started

	require.NoError(t, store.AppendRow(ctx, testShiftSheet, []string{"", "דנה", "דמו", "כהן", "06/01/2024", "08:00", "09:00", "01:00"}))
	svc.Invalidate(ctx)
	close(repo.release)
	require.NoError(t, <-done)

	result, err := svc.MonthlyReport(ctx, report.MonthlyReportRequest{Month: report.AllMonths})
	require.NoError(t, err)
	assert.Equal(t, 180, result.TotalMinutes)
}

type brokenShiftRepo struct{}

func (brokenShiftRepo) List(context.Context) ([]shifttime.ShiftRecord, error) {
	return nil, errors.New("quota exceeded")
}

func (brokenShiftRepo) Append(context.Context, shift.Shift) error { return nil }

func TestReportService_Unavailable(t *testing.T) {
	svc := NewReportService(brokenShiftRepo{}, shifttime.NewAggregator(time.UTC, nil), sse.NewHub())
	ctx := context.Background()

	_, err := svc.MonthlyReport(ctx, report.MonthlyReportRequest{})
	assert.ErrorIs(t, err, report.ErrReportUnavailable)

	err = svc.Refresh(ctx)
	assert.ErrorIs(t, err, report.ErrReportUnavailable)
}
