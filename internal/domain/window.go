package domain

import (
	"fmt"
	"slices"
	"time"
)

// DayLayout is the date key format used for buckets and chart points.
const DayLayout = "2006-01-02"

// DefaultWindowDays lists the window lengths a caller may pick by default.
var DefaultWindowDays = []int{7, 30, 90}

// TimeRange is the half-open interval [Start, End).
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies in [Start, End).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Window is a trailing range of Days calendar days ending at End. Start is
// local midnight of the first day so that the range covers exactly Days
// calendar days in Location.
type Window struct {
	Days     int            `json:"days"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	Location *time.Location `json:"-"`
}

// NewWindow builds the window of days calendar days ending at now.
func NewWindow(days int, now time.Time, loc *time.Location) (Window, error) {
	if days <= 0 {
		return Window{}, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidWindow, days)
	}
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	y, m, d := local.Date()
	start := time.Date(y, m, d-(days-1), 0, 0, 0, 0, loc)
	return Window{Days: days, Start: start, End: now, Location: loc}, nil
}

// Range returns the window as a TimeRange.
func (w Window) Range() TimeRange {
	return TimeRange{Start: w.Start, End: w.End}
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return w.Range().Contains(t)
}

// DayKey formats t as a date key in the window's location.
func (w Window) DayKey(t time.Time) string {
	return t.In(w.loc()).Format(DayLayout)
}

// DayKeys returns one key per calendar day of the window, ascending.
func (w Window) DayKeys() []string {
	y, m, d := w.Start.In(w.loc()).Date()
	keys := make([]string, 0, w.Days)
	for i := 0; i < w.Days; i++ {
		keys = append(keys, time.Date(y, m, d+i, 12, 0, 0, 0, w.loc()).Format(DayLayout))
	}
	return keys
}

func (w Window) loc() *time.Location {
	if w.Location == nil {
		return time.Local
	}
	return w.Location
}

// WindowPolicy restricts window lengths to an allowed set.
type WindowPolicy struct {
	Allowed  []int
	Location *time.Location
}

// Window validates days against the policy and builds the window ending at now.
func (p WindowPolicy) Window(days int, now time.Time) (Window, error) {
	allowed := p.Allowed
	if len(allowed) == 0 {
		allowed = DefaultWindowDays
	}
	if !slices.Contains(allowed, days) {
		return Window{}, fmt.Errorf("%w: %d days not in %v", ErrInvalidWindow, days, allowed)
	}
	return NewWindow(days, now, p.Location)
}
