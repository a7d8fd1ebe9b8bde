package shifttime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MaxShiftMinutes is the longest duration a single shift may count for.
const MaxShiftMinutes = 24 * 60

// maxDecimalHours bounds decimal input before it is converted to int.
const maxDecimalHours = 1_000_000

// epochLayouts parse durations a spreadsheet engine serialized as a full
// date-time anchored at 1899-12-30.
var epochLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// ParseDuration converts a duration string into minutes. It understands, in
// order: spreadsheet epoch date-times (UTC hour and minute), "H:MM" clock
// values and decimal hours. Anything else yields 0. The result may exceed
// MaxShiftMinutes; use IsCountable before adding it to a total.
func ParseDuration(s string) int {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return 0
	}

	if strings.Contains(clean, "1899") || strings.HasPrefix(clean, "18") {
		if m, ok := epochMinutes(clean); ok && IsCountable(m) {
			return m
		}
	}

	if strings.Contains(clean, ":") {
		return clockMinutes(clean)
	}

	return decimalMinutes(clean)
}

// IsSuspicious reports whether m is longer than a single day.
func IsSuspicious(minutes int) bool {
	return minutes > MaxShiftMinutes
}

// IsCountable reports whether m may be added to a medic's total.
func IsCountable(minutes int) bool {
	return minutes > 0 && minutes <= MaxShiftMinutes
}

func epochMinutes(s string) (int, bool) {
	if i := strings.Index(s, " ("); i > 0 {
		s = s[:i]
	}
	for _, layout := range epochLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		utc := t.UTC()
		return utc.Hour()*60 + utc.Minute(), true
	}
	return 0, false
}

func clockMinutes(s string) int {
	parts := strings.Split(s, ":")
	hours, ok := leadingInt(parts[0])
	if !ok {
		return 0
	}
	minutes, ok := leadingInt(parts[1])
	if !ok {
		return 0
	}
	return hours*60 + minutes
}

func decimalMinutes(s string) int {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxDecimalHours {
		return 0
	}
	hours := math.Floor(v)
	minutes := math.Round((v - hours) * 60)
	return int(hours)*60 + int(minutes)
}

// ClockDifference returns the minutes between two clock values, wrapping
// past midnight when end is earlier than start. Values outside a single day
// are treated as midnight; when both collapse to midnight the result is 0.
func ClockDifference(start, end string) int {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return 0
	}

	startMinutes := ParseDuration(start)
	endMinutes := ParseDuration(end)
	if startMinutes < 0 || startMinutes >= MaxShiftMinutes {
		startMinutes = 0
	}
	if endMinutes < 0 || endMinutes >= MaxShiftMinutes {
		endMinutes = 0
	}
	if startMinutes == 0 && endMinutes == 0 {
		return 0
	}

	if endMinutes < startMinutes {
		return MaxShiftMinutes - startMinutes + endMinutes
	}
	return endMinutes - startMinutes
}

// CalculateDuration renders ClockDifference as zero-padded "HH:MM", the form
// written to the calculated-duration column. Empty input yields "".
func CalculateDuration(start, end string) string {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return ""
	}
	return FormatClock(ClockDifference(start, end))
}

// FormatClock renders minutes as zero-padded "HH:MM".
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatMinutes renders minutes as "H:MM". Hours are not capped so large
// monthly totals stay visible; negative input renders as "0:00".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
