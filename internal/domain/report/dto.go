package report

import (
	"strings"

	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
	"github.com/medicshift/shift-report-backend/internal/pkg/validator"
)

// AllMonths selects every record regardless of date.
const AllMonths = "all"

const maxSearchLength = 100

// ========================================
// MONTHLY HOURS REPORT
// ========================================

type MonthlyReportRequest struct {
	// Month is a Hebrew label ("ינואר 2024"), "YYYY-MM", AllMonths, or empty
	// for the newest month present in the data.
	Month  string
	Search string
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	month := strings.TrimSpace(r.Month)
	if month != "" && !strings.EqualFold(month, AllMonths) {
		if _, err := shifttime.ParseMonth(month); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be a month label, YYYY-MM or \"all\"",
			})
		}
	}

	if len([]rune(r.Search)) > maxSearchLength {
		errs = append(errs, validator.ValidationError{
			Field:   "search",
			Message: "search is too long",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type MonthlyReport struct {
	Months        []MonthOption `json:"months"`
	SelectedMonth MonthOption   `json:"selected_month"`
	Search        string        `json:"search,omitempty"`
	GeneratedAt   string        `json:"generated_at"`

	TotalMinutes int            `json:"total_minutes"`
	TotalHours   string         `json:"total_hours"`
	Totals       []MedicTotal   `json:"totals"`
	Shifts       []ShiftDetail  `json:"shifts"`
	Diagnostics  map[string]int `json:"diagnostics,omitempty"`
}

type MedicTotal struct {
	MedicName string `json:"medic_name"`
	Minutes   int    `json:"minutes"`
	Hours     string `json:"hours"`
}

type ShiftDetail struct {
	Row        int    `json:"row"`
	MedicName  string `json:"medic_name"`
	ShiftType  string `json:"shift_type"`
	DoctorName string `json:"doctor_name"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Duration   string `json:"duration"`
	Source     string `json:"source"`
	Minutes    int    `json:"minutes"`
	Counted    bool   `json:"counted"`
}

type MonthsResponse struct {
	Months []MonthOption `json:"months"`
}
