package shift

import (
	"strconv"
	"time"

	"github.com/medicshift/shift-report-backend/internal/pkg/shifttime"
)

type ShiftType string

const (
	ShiftTypeFullMedicine ShiftType = "רפואה שלמה"
	ShiftTypeTrio         ShiftType = "מיזם טריו"
	ShiftTypeDemo         ShiftType = "דמו"
	ShiftTypeTraining     ShiftType = "הכשרה"
)

var ShiftTypes = []ShiftType{ShiftTypeFullMedicine, ShiftTypeTrio, ShiftTypeDemo, ShiftTypeTraining}

func (t ShiftType) IsValid() bool {
	for _, known := range ShiftTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Location string

const (
	LocationHome   Location = "בית"
	LocationClinic Location = "מרפאה"
)

func (l Location) IsValid() bool {
	return l == LocationHome || l == LocationClinic
}

// Columns after the reported-hours column of a Shift_card row.
const (
	ColLocation = shifttime.ColReportedHours + 1 + iota
	ColNotes
	ColCasesHandled
	ColMacabiTasks
	ColQuality
	ColCommunicationClarity
	ColCommunicationPleasantness
	ColScreenshotsSent
	ColShiftOrder
	ColSubmissionID

	RowWidth = 20
)

const (
	timestampLayout = "02/01/2006 15:04:05"
	dateLayout      = "02/01/2006"

	yes = "כן"
	no  = "לא"
)

// Shift is a validated submission ready to be written to the sheet.
type Shift struct {
	SubmissionID       string
	SubmittedAt        time.Time
	MedicName          string
	Type               ShiftType
	DoctorName         string
	SessionDate        time.Time
	StartTime          string
	EndTime            string
	CalculatedDuration string
	ManualDuration     string
	Location           Location
	Notes              string
	Details            TypeDetails
}

// TypeDetails holds the fields that only some shift types fill in.
type TypeDetails struct {
	CasesHandled              int
	MacabiTasks               int
	Quality                   string
	CommunicationClarity      string
	CommunicationPleasantness string
	ScreenshotsSent           bool
	ShiftOrder                string
}

// Row lays the shift out in Shift_card column order. SubmittedAt is rendered
// in its own location.
func (s Shift) Row() []string {
	row := make([]string, RowWidth)
	row[shifttime.ColTimestamp] = s.SubmittedAt.Format(timestampLayout)
	row[shifttime.ColMedicName] = s.MedicName
	row[shifttime.ColShiftType] = string(s.Type)
	row[shifttime.ColDoctorName] = s.DoctorName
	row[shifttime.ColDate] = s.SessionDate.Format(dateLayout)
	row[shifttime.ColStartTime] = s.StartTime
	row[shifttime.ColEndTime] = s.EndTime
	row[shifttime.ColCalculatedDuration] = s.CalculatedDuration
	if s.ManualDuration != "" && s.ManualDuration != "00:00" {
		row[shifttime.ColReportedHours] = s.ManualDuration
	}
	row[ColLocation] = string(s.Location)
	row[ColNotes] = s.Notes

	d := s.Details
	switch s.Type {
	case ShiftTypeFullMedicine:
		row[ColCasesHandled] = strconv.Itoa(d.CasesHandled)
		row[ColScreenshotsSent] = yesNo(d.ScreenshotsSent)
	case ShiftTypeTrio:
		row[ColCasesHandled] = strconv.Itoa(d.CasesHandled)
		row[ColMacabiTasks] = strconv.Itoa(d.MacabiTasks)
		row[ColQuality] = d.Quality
	case ShiftTypeDemo:
		row[ColCasesHandled] = strconv.Itoa(d.CasesHandled)
		row[ColCommunicationClarity] = d.CommunicationClarity
		row[ColCommunicationPleasantness] = d.CommunicationPleasantness
		row[ColScreenshotsSent] = yesNo(d.ScreenshotsSent)
		row[ColShiftOrder] = d.ShiftOrder
	case ShiftTypeTraining:
		row[ColQuality] = d.Quality
		row[ColShiftOrder] = d.ShiftOrder
	}

	row[ColSubmissionID] = s.SubmissionID
	return row
}

func yesNo(b bool) string {
	if b {
		return yes
	}
	return no
}
