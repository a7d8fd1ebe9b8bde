package shifttime

import (
	"strconv"
	"strings"
	"time"
)

const (
	minDateYear = 1900
	maxDateYear = 2100
)

// isoLayouts are tried for strings containing "-". Layouts without a zone are
// interpreted in the caller's location.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// fallbackLayouts cover the textual dates spreadsheet exports and browsers
// tend to produce, including JavaScript's Date.toString() once the trailing
// "(zone name)" is stripped.
var fallbackLayouts = []string{
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"Mon Jan 02 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.RubyDate,
	time.UnixDate,
	time.ANSIC,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// ParseDate parses s as a calendar date in UTC. See Aggregator.ParseDate for
// the accepted formats.
func ParseDate(s string) (time.Time, bool) {
	return parseDate(s, time.UTC)
}

// parseDate returns midnight of the parsed calendar date in loc.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return time.Time{}, false
	}

	if strings.Contains(clean, "/") {
		if t, ok := parseDayFirst(clean, "/", loc); ok {
			return t, true
		}
	}
	if strings.Contains(clean, ".") {
		if t, ok := parseDayFirst(clean, ".", loc); ok {
			return t, true
		}
	}
	if strings.Contains(clean, "-") {
		if t, ok := parseDashed(clean, loc); ok {
			return t, true
		}
	}
	return parseFallback(clean, loc)
}

// parseDayFirst handles DD<sep>MM<sep>YYYY with an optional trailing time.
func parseDayFirst(s, sep string, loc *time.Location) (time.Time, bool) {
	datePart := strings.Fields(s)[0]
	parts := strings.Split(datePart, sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, ok := leadingInt(parts[0])
	if !ok {
		return time.Time{}, false
	}
	month, ok := leadingInt(parts[1])
	if !ok {
		return time.Time{}, false
	}
	year, ok := leadingInt(parts[2])
	if !ok {
		return time.Time{}, false
	}
	return calendarDate(year, month, day, loc)
}

// parseDashed handles ISO timestamps first, then loose Y-M-D and D-M-Y triples.
func parseDashed(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return dateIn(t, loc)
		}
	}

	parts := strings.Split(strings.Fields(s)[0], "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	a, okA := leadingInt(parts[0])
	b, okB := leadingInt(parts[1])
	c, okC := leadingInt(parts[2])
	if !okA || !okB || !okC {
		return time.Time{}, false
	}
	if len(strings.TrimSpace(parts[0])) == 4 {
		return calendarDate(a, b, c, loc)
	}
	return calendarDate(c, b, a, loc)
}

func parseFallback(s string, loc *time.Location) (time.Time, bool) {
	if i := strings.Index(s, " ("); i > 0 {
		s = s[:i]
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return dateIn(t, loc)
		}
	}
	return time.Time{}, false
}

// calendarDate builds a date and rejects values that time.Date would
// normalize (e.g. 30 February rolling into March).
func calendarDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if day < 1 || day > 31 || month < 1 || month > 12 || year < minDateYear || year > maxDateYear {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

func dateIn(t time.Time, loc *time.Location) (time.Time, bool) {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
}

// leadingInt reads an optionally signed run of digits at the start of s,
// ignoring surrounding whitespace and any trailing garbage.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
