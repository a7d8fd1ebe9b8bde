package shifttime

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// HebrewMonthNames is the fixed calendar ordering used for month labels.
var HebrewMonthNames = [12]string{
	"ינואר", "פברואר", "מרץ", "אפריל", "מאי", "יוני",
	"יולי", "אוגוסט", "ספטמבר", "אוקטובר", "נובמבר", "דצמבר",
}

var ErrInvalidMonth = errors.New("invalid month")

// Month is a (year, month) bucket. The zero value means "no month".
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the bucket t falls into.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Label renders the month the way he-IL long month formatting does, e.g. "ינואר 2024".
func (m Month) Label() string {
	if m.Month < time.January || m.Month > time.December {
		return ""
	}
	return fmt.Sprintf("%s %d", HebrewMonthNames[m.Month-1], m.Year)
}

// String renders the month as "YYYY-MM".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Contains reports whether t falls in m.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// Compare orders months chronologically.
func (m Month) Compare(o Month) int {
	if m.Year != o.Year {
		if m.Year < o.Year {
			return -1
		}
		return 1
	}
	switch {
	case m.Month < o.Month:
		return -1
	case m.Month > o.Month:
		return 1
	}
	return 0
}

// ParseMonth accepts a Hebrew label ("מרץ 2024") or "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return Month{}, ErrInvalidMonth
	}

	if fields := strings.Fields(clean); len(fields) == 2 {
		idx := slices.Index(HebrewMonthNames[:], fields[0])
		year, err := strconv.Atoi(fields[1])
		if idx >= 0 && err == nil {
			return newMonth(year, idx+1)
		}
	}

	if parts := strings.Split(clean, "-"); len(parts) == 2 {
		year, errY := strconv.Atoi(parts[0])
		month, errM := strconv.Atoi(parts[1])
		if errY == nil && errM == nil {
			return newMonth(year, month)
		}
	}

	return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
}

func newMonth(year, month int) (Month, error) {
	if month < 1 || month > 12 || year < minDateYear || year > maxDateYear {
		return Month{}, fmt.Errorf("%w: %d-%d", ErrInvalidMonth, year, month)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// SortMonthsDesc orders months newest-first.
func SortMonthsDesc(months []Month) {
	slices.SortFunc(months, func(a, b Month) int {
		return b.Compare(a)
	})
}

// MonthLabels renders each month with Label.
func MonthLabels(months []Month) []string {
	labels := make([]string, len(months))
	for i, m := range months {
		labels[i] = m.Label()
	}
	return labels
}
