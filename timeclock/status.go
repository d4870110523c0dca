package timeclock

import (
	"time"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/utils"
)

// PunchStatus is the live punch state of one employee: whether a session is
// open, since when, and the duration worked today (closed sessions plus the
// accruing open one).
type PunchStatus struct {
	PunchedIn     bool       `json:"punchedIn"`
	OpenSince     *time.Time `json:"openSince,omitempty"`
	ActivePlaque  string     `json:"activePlaque,omitempty"`
	WorkedTodayMs int64      `json:"workedTodayMs"`
}

// StatusFor computes the live status at the given instant. Roles exempt
// from the punch gate are handled by the caller; this reports raw stream
// state.
func StatusFor(logs []model.PunchLog, employeeName string, now time.Time, policy DoubleInPolicy) PunchStatus {
	empLogs := utils.Filter(logs, func(l model.PunchLog) bool { return l.EmployeeName == employeeName })
	rec := Reconstruct(empLogs, policy)
	today := DayKeyOf(now)

	var worked time.Duration
	for _, s := range rec.Sessions {
		if DayKeyOf(s.Out) == today {
			worked += s.Duration
		}
	}

	status := PunchStatus{WorkedTodayMs: worked.Milliseconds()}
	if rec.OpenSince != nil {
		status.PunchedIn = true
		status.OpenSince = rec.OpenSince
		status.ActivePlaque = rec.OpenTag
		if accrued := now.Sub(*rec.OpenSince); accrued > 0 {
			status.WorkedTodayMs += accrued.Milliseconds()
		}
	}
	return status
}
