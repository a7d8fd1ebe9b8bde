package shift

import (
	"fmt"
	"strings"

	"github.com/medicshift/shift-report-backend/internal/pkg/validator"
)

const maxNotesLength = 2000

// ========================================
// SUBMIT SHIFT
// ========================================

type SubmitShiftRequest struct {
	ShiftType      ShiftType `json:"shift_type"`
	DoctorName     string    `json:"doctor_name"`
	InstructorName string    `json:"instructor_name"`
	SessionDate    string    `json:"session_date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	ManualDuration string    `json:"manual_duration"`
	Location       Location  `json:"location"`
	ShiftNotes     string    `json:"shift_notes"`
	IsDemo         bool      `json:"is_demo"`

	// רפואה שלמה
	CasesHandled    *int `json:"cases_handled,omitempty"`
	ScreenshotsSent bool `json:"screenshots_sent"`

	// מיזם טריו
	TrioCasesHandled *int   `json:"trio_cases_handled,omitempty"`
	MacabiTasks      *int   `json:"macabi_tasks,omitempty"`
	ShiftQuality     string `json:"shift_quality"`

	// דמו
	DemoCasesHandled          *int   `json:"demo_cases_handled,omitempty"`
	CommunicationClarity      string `json:"communication_clarity"`
	CommunicationPleasantness string `json:"communication_pleasantness"`
	DemoScreenshotsSent       bool   `json:"demo_screenshots_sent"`
	DemoOrder                 string `json:"demo_order"`

	// הכשרה
	TrainingOrder   string `json:"training_order"`
	TrainingQuality string `json:"training_quality"`
}

func (r *SubmitShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.ShiftType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "shift_type must be one of the known shift types",
		})
	}

	if r.ShiftType == ShiftTypeTraining {
		if validator.IsEmpty(r.InstructorName) {
			errs = append(errs, validator.ValidationError{Field: "instructor_name", Message: "instructor_name is required"})
		}
	} else if validator.IsEmpty(r.DoctorName) {
		errs = append(errs, validator.ValidationError{Field: "doctor_name", Message: "doctor_name is required"})
	}

	if validator.IsEmpty(r.SessionDate) {
		errs = append(errs, validator.ValidationError{Field: "session_date", Message: "session_date is required"})
	} else if _, ok := validator.IsValidDate(r.SessionDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "session_date", Message: "session_date must be in YYYY-MM-DD format"})
	}

	errs = appendClockError(errs, "start_time", r.StartTime, true)
	errs = appendClockError(errs, "end_time", r.EndTime, true)
	errs = appendClockError(errs, "manual_duration", r.ManualDuration, false)

	if r.Location != "" && !r.Location.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: fmt.Sprintf("location must be %q or %q", LocationHome, LocationClinic),
		})
	}

	if len([]rune(r.ShiftNotes)) > maxNotesLength {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_notes",
			Message: fmt.Sprintf("shift_notes must be at most %d characters", maxNotesLength),
		})
	}

	for field, v := range map[string]*int{
		"cases_handled":      r.CasesHandled,
		"trio_cases_handled": r.TrioCasesHandled,
		"macabi_tasks":       r.MacabiTasks,
		"demo_cases_handled": r.DemoCasesHandled,
	} {
		if v != nil && *v < 0 {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must not be negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func appendClockError(errs validator.ValidationErrors, field, value string, required bool) validator.ValidationErrors {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return append(errs, validator.ValidationError{Field: field, Message: field + " is required"})
		}
		return errs
	}
	if !validator.IsValidClock(value) {
		return append(errs, validator.ValidationError{Field: field, Message: field + " must be in HH:MM format"})
	}
	return errs
}

// Counselor is the doctor or instructor name for the request's shift type.
func (r *SubmitShiftRequest) Counselor() string {
	if r.ShiftType == ShiftTypeTraining {
		return strings.TrimSpace(r.InstructorName)
	}
	return strings.TrimSpace(r.DoctorName)
}

// Details picks the type-specific fields for the request's shift type.
func (r *SubmitShiftRequest) Details() TypeDetails {
	switch r.ShiftType {
	case ShiftTypeFullMedicine:
		return TypeDetails{CasesHandled: intValue(r.CasesHandled), ScreenshotsSent: r.ScreenshotsSent}
	case ShiftTypeTrio:
		return TypeDetails{
			CasesHandled: intValue(r.TrioCasesHandled),
			MacabiTasks:  intValue(r.MacabiTasks),
			Quality:      strings.TrimSpace(r.ShiftQuality),
		}
	case ShiftTypeDemo:
		return TypeDetails{
			CasesHandled:              intValue(r.DemoCasesHandled),
			CommunicationClarity:      strings.TrimSpace(r.CommunicationClarity),
			CommunicationPleasantness: strings.TrimSpace(r.CommunicationPleasantness),
			ScreenshotsSent:           r.DemoScreenshotsSent,
			ShiftOrder:                strings.TrimSpace(r.DemoOrder),
		}
	case ShiftTypeTraining:
		return TypeDetails{
			Quality:    strings.TrimSpace(r.TrainingQuality),
			ShiftOrder: strings.TrimSpace(r.TrainingOrder),
		}
	}
	return TypeDetails{}
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

type SubmitShiftResponse struct {
	SubmissionID       string `json:"submission_id,omitempty"`
	MedicName          string `json:"medic_name"`
	SessionDate        string `json:"session_date"`
	CalculatedDuration string `json:"calculated_duration"`
	Demo               bool   `json:"demo"`
}
