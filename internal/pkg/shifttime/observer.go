package shifttime

import (
	"context"
	"log/slog"
	"sync"
)

// DiagnosticKind classifies a non-fatal parsing or aggregation problem.
type DiagnosticKind string

const (
	DiagEmptyDate           DiagnosticKind = "empty_date"
	DiagUnparseableDate     DiagnosticKind = "unparseable_date"
	DiagUnparseableDuration DiagnosticKind = "unparseable_duration"
	DiagNonPositiveDuration DiagnosticKind = "non_positive_duration"
	DiagSuspiciousDuration  DiagnosticKind = "suspicious_duration"
	DiagMissingMedic        DiagnosticKind = "missing_medic"
)

// Diagnostic describes one skipped or questionable value.
type Diagnostic struct {
	Kind    DiagnosticKind
	Row     int // -1 when the value is not tied to a record
	Medic   string
	Value   string
	Minutes int
}

// Observer receives diagnostics. Implementations must not block.
type Observer interface {
	Observe(d Diagnostic)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(d Diagnostic)

func (f ObserverFunc) Observe(d Diagnostic) { f(d) }

type nopObserver struct{}

func (nopObserver) Observe(Diagnostic) {}

// NopObserver discards every diagnostic.
var NopObserver Observer = nopObserver{}

type slogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver logs diagnostics through logger. Suspicious durations are
// logged at warn level, everything else at debug.
func NewSlogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogObserver{logger: logger}
}

func (o *slogObserver) Observe(d Diagnostic) {
	level := slog.LevelDebug
	if d.Kind == DiagSuspiciousDuration {
		level = slog.LevelWarn
	}
	o.logger.Log(context.Background(), level, "Shift record skipped",
		"kind", string(d.Kind),
		"row", d.Row,
		"medic", d.Medic,
		"value", d.Value,
		"minutes", d.Minutes,
	)
}

// Collector keeps every diagnostic it sees so the caller can surface them.
type Collector struct {
	mu    sync.Mutex
	items []Diagnostic
}

func (c *Collector) Observe(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, d)
}

// Diagnostics returns a copy of the collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}

// Counts groups the collected diagnostics by kind.
func (c *Collector) Counts() map[DiagnosticKind]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := make(map[DiagnosticKind]int)
	for _, d := range c.items {
		counts[d.Kind]++
	}
	return counts
}

type multiObserver []Observer

func (m multiObserver) Observe(d Diagnostic) {
	for _, o := range m {
		o.Observe(d)
	}
}

// MultiObserver fans a diagnostic out to every non-nil observer.
func MultiObserver(observers ...Observer) Observer {
	var m multiObserver
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	if len(m) == 0 {
		return NopObserver
	}
	return m
}
