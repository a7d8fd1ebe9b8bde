package shifttime

import "strings"

// Column positions in a Shift_card row.
const (
	ColTimestamp = iota
	ColMedicName
	ColShiftType
	ColDoctorName
	ColDate
	ColStartTime
	ColEndTime
	ColCalculatedDuration
	ColReportedHours
)

// ShiftRecord is one shift row as read from the spreadsheet. All values are
// kept as text; parsing happens during aggregation.
type ShiftRecord struct {
	Row                int
	MedicName          string
	ShiftType          string
	DoctorName         string
	Date               string
	StartTime          string
	EndTime            string
	CalculatedDuration string
	ReportedHours      string
}

// DurationSource tells which field a record's duration was taken from.
type DurationSource string

const (
	SourceReported   DurationSource = "reported"
	SourceCalculated DurationSource = "calculated"
	SourceClock      DurationSource = "clock"
	SourceNone       DurationSource = "none"
)

// RecordFromRow maps a raw row onto a ShiftRecord. Missing trailing cells
// are treated as empty.
func RecordFromRow(row []string, index int) ShiftRecord {
	return ShiftRecord{
		Row:                index,
		MedicName:          Cell(row, ColMedicName),
		ShiftType:          Cell(row, ColShiftType),
		DoctorName:         Cell(row, ColDoctorName),
		Date:               Cell(row, ColDate),
		StartTime:          Cell(row, ColStartTime),
		EndTime:            Cell(row, ColEndTime),
		CalculatedDuration: Cell(row, ColCalculatedDuration),
		ReportedHours:      Cell(row, ColReportedHours),
	}
}

// RecordsFromRows maps rows with RecordFromRow, numbering them from first.
func RecordsFromRows(rows [][]string, first int) []ShiftRecord {
	records := make([]ShiftRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, RecordFromRow(row, first+i))
	}
	return records
}

// Cell returns the trimmed value at index i, or "" when the row is short.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// DurationText picks the duration string to parse: a reported override when
// it differs from the calculated value, then the calculated value, then the
// start/end clock difference.
func (r ShiftRecord) DurationText() (string, DurationSource) {
	if r.ReportedHours != "" && r.ReportedHours != r.CalculatedDuration {
		return r.ReportedHours, SourceReported
	}
	if r.CalculatedDuration != "" {
		return r.CalculatedDuration, SourceCalculated
	}
	if r.StartTime != "" && r.EndTime != "" {
		return CalculateDuration(r.StartTime, r.EndTime), SourceClock
	}
	return "", SourceNone
}

// Minutes parses the record's duration. It does not apply the countable range.
func (r ShiftRecord) Minutes() int {
	text, _ := r.DurationText()
	return ParseDuration(text)
}
