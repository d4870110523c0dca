package timeclock

import (
	"sort"
	"time"

	"github.com/shawnlecompte2-web/LogiVrac/model"
)

// DoubleInPolicy selects what happens when a punch-in arrives while a
// session is already open for the employee.
type DoubleInPolicy int

const (
	// ReplaceOpenSession abandons the prior open session (it never closes
	// and contributes no duration) and opens a new one at the later punch.
	// This is the legacy one-slot behavior and the default.
	ReplaceOpenSession DoubleInPolicy = iota
	// RejectSecondIn ignores the later punch-in and keeps the open session.
	RejectSecondIn
)

// Session is one closed punch-in/punch-out pair.
type Session struct {
	In           time.Time
	Out          time.Time
	Duration     time.Duration
	Tag          string // plaque recorded on the opening punch
	LunchMinutes *int   // declared on the closing punch, nil when absent
}

// Reconstruction is the result of pairing one employee's event stream.
type Reconstruction struct {
	Sessions  []Session
	OpenSince *time.Time // non-nil while a session is still open
	OpenTag   string
}

// Reconstruct pairs punch events for a single employee. Events are sorted
// ascending by parsed instant (stable on ties), then walked with a single
// open slot: "in" opens it, "out" closes it. An "out" with no open slot is
// an orphan and is discarded; events with an unparseable timestamp are
// skipped. A trailing open slot means the employee is currently punched in.
func Reconstruct(logs []model.PunchLog, policy DoubleInPolicy) Reconstruction {
	type parsed struct {
		log model.PunchLog
		at  time.Time
	}

	events := make([]parsed, 0, len(logs))
	for _, l := range logs {
		events = append(events, parsed{log: l, at: ParseTimestamp(l.Timestamp)})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})

	var rec Reconstruction
	for _, e := range events {
		if e.at.IsZero() {
			continue
		}
		switch e.log.Type {
		case model.PunchIn:
			if rec.OpenSince != nil && policy == RejectSecondIn {
				continue
			}
			at := e.at
			rec.OpenSince = &at
			rec.OpenTag = e.log.Plaque
		case model.PunchOut:
			if rec.OpenSince == nil {
				continue
			}
			rec.Sessions = append(rec.Sessions, Session{
				In:           *rec.OpenSince,
				Out:          e.at,
				Duration:     e.at.Sub(*rec.OpenSince),
				Tag:          rec.OpenTag,
				LunchMinutes: e.log.LunchMinutes,
			})
			rec.OpenSince = nil
			rec.OpenTag = ""
		}
	}
	return rec
}
