package shifttime

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter scopes an aggregation. A zero Month means every month.
type Filter struct {
	Month  Month
	Search string
}

// MedicTotal is one line of the hours summary.
type MedicTotal struct {
	MedicName string
	Minutes   int
}

// Hours renders Minutes as "H:MM".
func (t MedicTotal) Hours() string {
	return FormatMinutes(t.Minutes)
}

// Aggregator parses dates in a fixed location and reports skipped records to
// an Observer. It holds no mutable state and is safe for concurrent use as
// long as its Observer is.
type Aggregator struct {
	loc      *time.Location
	observer Observer
}

// NewAggregator returns an Aggregator. A nil location means UTC and a nil
// observer discards diagnostics.
func NewAggregator(loc *time.Location, observer Observer) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	if observer == nil {
		observer = NopObserver
	}
	return &Aggregator{loc: loc, observer: observer}
}

// WithObserver returns a copy of a that reports to observer.
func (a *Aggregator) WithObserver(observer Observer) *Aggregator {
	return NewAggregator(a.loc, observer)
}

// Location returns the location dates are interpreted in.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// ParseDate converts s into a calendar date. Accepted forms, in order:
// DD/MM/YYYY (optionally followed by a time), DD.MM.YYYY, ISO dates and
// anything else containing "-", then a handful of common textual layouts.
// Empty or unparseable input is reported to the observer and returns false.
func (a *Aggregator) ParseDate(s string) (time.Time, bool) {
	t, ok := parseDate(s, a.loc)
	if !ok {
		a.observer.Observe(dateDiagnostic(-1, "", s))
	}
	return t, ok
}

// Select returns the records that match f, in input order. Records with an
// unparseable date are dropped only when f has a month.
func (a *Aggregator) Select(records []ShiftRecord, f Filter) []ShiftRecord {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]ShiftRecord, 0, len(records))
	for _, r := range records {
		if search != "" && !strings.Contains(strings.ToLower(r.MedicName), search) {
			continue
		}
		if !f.Month.IsZero() {
			t, ok := parseDate(r.Date, a.loc)
			if !ok {
				a.observer.Observe(dateDiagnostic(r.Row, r.MedicName, r.Date))
				continue
			}
			if !f.Month.Contains(t) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// Aggregate sums countable minutes per medic for the records matching f.
// Medics without a countable record are absent from the result. Skipped
// records are reported to the observer; the call never fails.
func (a *Aggregator) Aggregate(records []ShiftRecord, f Filter) map[string]int {
	totals := make(map[string]int)
	for _, r := range a.Select(records, f) {
		if r.MedicName == "" {
			a.observer.Observe(Diagnostic{Kind: DiagMissingMedic, Row: r.Row})
			continue
		}

		text, _ := r.DurationText()
		minutes := ParseDuration(text)
		if !IsCountable(minutes) {
			a.observer.Observe(durationDiagnostic(r, text, minutes))
			continue
		}
		totals[r.MedicName] += minutes
	}
	return totals
}

// ExtractMonths returns the distinct months present in records, newest-first.
func (a *Aggregator) ExtractMonths(records []ShiftRecord) []Month {
	seen := make(map[Month]struct{})
	var months []Month
	for _, r := range records {
		t, ok := parseDate(r.Date, a.loc)
		if !ok {
			continue
		}
		m := MonthOf(t)
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	SortMonthsDesc(months)
	return months
}

// SortTotals orders totals by medic name with Hebrew collation, falling back
// to byte order for names the collator considers equal.
func SortTotals(totals map[string]int) []MedicTotal {
	out := make([]MedicTotal, 0, len(totals))
	for name, minutes := range totals {
		out = append(out, MedicTotal{MedicName: name, Minutes: minutes})
	}

	c := collate.New(language.Hebrew)
	slices.SortFunc(out, func(x, y MedicTotal) int {
		if n := c.CompareString(x.MedicName, y.MedicName); n != 0 {
			return n
		}
		return strings.Compare(x.MedicName, y.MedicName)
	})
	return out
}

// SumMinutes adds every value in totals.
func SumMinutes(totals map[string]int) int {
	sum := 0
	for _, m := range totals {
		sum += m
	}
	return sum
}

func dateDiagnostic(row int, medic, value string) Diagnostic {
	kind := DiagUnparseableDate
	if strings.TrimSpace(value) == "" {
		kind = DiagEmptyDate
	}
	return Diagnostic{Kind: kind, Row: row, Medic: medic, Value: value}
}

func durationDiagnostic(r ShiftRecord, text string, minutes int) Diagnostic {
	kind := DiagNonPositiveDuration
	switch {
	case IsSuspicious(minutes):
		kind = DiagSuspiciousDuration
	case minutes == 0 && (strings.TrimSpace(text) == "" || !looksZero(text)):
		kind = DiagUnparseableDuration
	}
	return Diagnostic{Kind: kind, Row: r.Row, Medic: r.MedicName, Value: text, Minutes: minutes}
}

// looksZero reports whether text spells out a zero duration such as "00:00" or "0".
func looksZero(text string) bool {
	return strings.Trim(strings.TrimSpace(text), "0:.") == ""
}
