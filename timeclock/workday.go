package timeclock

import (
	"sort"
	"time"

	"github.com/shawnlecompte2-web/LogiVrac/model"
)

// WorkDay aggregates one employee's closed sessions for one calendar date.
// Derived on every read, never persisted. A session belongs to the day of
// its punch-out.
type WorkDay struct {
	Date         string // YYYY-MM-DD
	Sessions     []Session
	Gross        time.Duration
	LunchMinutes int // last declared value for the day; 0 when never declared
}

// Net is the payable duration: gross minus the lunch deduction, floored at
// zero.
func (d *WorkDay) Net() time.Duration {
	net := d.Gross - time.Duration(d.LunchMinutes)*time.Minute
	if net < 0 {
		return 0
	}
	return net
}

func (d *WorkDay) NetMs() int64 {
	return d.Net().Milliseconds()
}

func (d *WorkDay) GrossMs() int64 {
	return d.Gross.Milliseconds()
}

// Tag is the plaque of the day's first session, or "" when none was
// recorded.
func (d *WorkDay) Tag() string {
	for _, s := range d.Sessions {
		if s.Tag != "" {
			return s.Tag
		}
	}
	return ""
}

// BuildWorkDays reconstructs one employee's event stream into per-day
// aggregates keyed by ISO date, plus the open-session instant when the
// employee is still punched in.
func BuildWorkDays(logs []model.PunchLog, policy DoubleInPolicy) (map[string]*WorkDay, *time.Time) {
	rec := Reconstruct(logs, policy)

	days := make(map[string]*WorkDay)
	for _, s := range rec.Sessions {
		key := DayKeyOf(s.Out)
		day, ok := days[key]
		if !ok {
			day = &WorkDay{Date: key}
			days[key] = day
		}
		day.Sessions = append(day.Sessions, s)
		day.Gross += s.Duration
		if s.LunchMinutes != nil {
			day.LunchMinutes = *s.LunchMinutes
		}
	}
	return days, rec.OpenSince
}

// SortedDates returns the day keys of a BuildWorkDays result, ascending.
func SortedDates(days map[string]*WorkDay) []string {
	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
