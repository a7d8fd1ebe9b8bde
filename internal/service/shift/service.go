package shift

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/medicshift/shift-report-backend/internal/domain/report"
	"github.com/medicshift/shift-report-backend/internal/domain/shift"
	"github.com/medicshift/shift-report-backend/internal/pkg/email"
	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
	"github.com/medicshift/shift-report-backend/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	shiftRepo     shift.ShiftRepository
	reportService report.ReportService
	emailService  email.EmailService
	notifyEmail   string
	loc           *time.Location
	now           func() time.Time

	notifications sync.WaitGroup
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	reportService report.ReportService,
	emailService email.EmailService,
	notifyEmail string,
	loc *time.Location,
) *ShiftServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &ShiftServiceImpl{
		shiftRepo:     shiftRepo,
		reportService: reportService,
		emailService:  emailService,
		notifyEmail:   notifyEmail,
		loc:           loc,
		now:           time.Now,
	}
}

// Submit validates req and appends it to the shift sheet on behalf of
// medicName. Demo submissions are validated and echoed back but never stored.
func (s *ShiftServiceImpl) Submit(ctx context.Context, medicName string, req shift.SubmitShiftRequest) (shift.SubmitShiftResponse, error) {
	medicName = strings.TrimSpace(medicName)
	if medicName == "" {
		return shift.SubmitShiftResponse{}, shift.ErrMedicRequired
	}

	if err := req.Validate(); err != nil {
		return shift.SubmitShiftResponse{}, err
	}

	sessionDate, _ := validator.IsValidDate(req.SessionDate)
	start := strings.TrimSpace(req.StartTime)
	end := strings.TrimSpace(req.EndTime)

	entry := shift.Shift{
		SubmittedAt:        s.now().In(s.loc),
		MedicName:          medicName,
		Type:               req.ShiftType,
		DoctorName:         req.Counselor(),
		SessionDate:        sessionDate,
		StartTime:          start,
		EndTime:            end,
		CalculatedDuration: shifttime.CalculateDuration(start, end),
		ManualDuration:     strings.TrimSpace(req.ManualDuration),
		Location:           req.Location,
		Notes:              strings.TrimSpace(req.ShiftNotes),
		Details:            req.Details(),
	}

	response := shift.SubmitShiftResponse{
		MedicName:          medicName,
		SessionDate:        req.SessionDate,
		CalculatedDuration: entry.CalculatedDuration,
		Demo:               req.IsDemo,
	}

	if req.IsDemo {
		slog.Info("Demo shift validated, not stored", "shift_type", string(req.ShiftType))
		return response, nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return shift.SubmitShiftResponse{}, fmt.Errorf("failed to generate submission id: %w", err)
	}
	entry.SubmissionID = id.String()

	if err := s.shiftRepo.Append(ctx, entry); err != nil {
		return shift.SubmitShiftResponse{}, err
	}
	response.SubmissionID = entry.SubmissionID

	slog.Info("Shift submitted",
		"submission_id", entry.SubmissionID,
		"shift_type", string(entry.Type),
		"calculated_duration", entry.CalculatedDuration,
	)

	s.reportService.Invalidate(ctx)
	s.notify(entry)

	return response, nil
}

func (s *ShiftServiceImpl) notify(entry shift.Shift) {
	if s.emailService == nil || s.notifyEmail == "" {
		return
	}

	data := email.ShiftSubmittedData{
		SubmissionID:       entry.SubmissionID,
		MedicName:          entry.MedicName,
		ShiftType:          string(entry.Type),
		DoctorName:         entry.DoctorName,
		SessionDate:        entry.SessionDate.Format("02/01/2006"),
		StartTime:          entry.StartTime,
		EndTime:            entry.EndTime,
		CalculatedDuration: entry.CalculatedDuration,
		ManualDuration:     entry.ManualDuration,
		Location:           string(entry.Location),
		Notes:              entry.Notes,
	}

	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()
		if err := s.emailService.SendShiftSubmitted(s.notifyEmail, data); err != nil {
			slog.Error("failed to send shift notification", "submission_id", data.SubmissionID, "error", err)
		}
	}()
}

// Wait blocks until pending notification emails have been sent.
func (s *ShiftServiceImpl) Wait() {
	s.notifications.Wait()
}
