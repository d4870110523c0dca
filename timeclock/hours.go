package timeclock

import "github.com/shawnlecompte2-web/LogiVrac/model"

// HoursSource tags where a day's authoritative figures come from: a live
// recompute of the punch stream (still mutable) or a frozen approval record.
type HoursSource int

const (
	HoursLive HoursSource = iota
	HoursFinal
)

// DayHours are the resolved figures for one (employee, date). Once a day is
// approved the frozen record is authoritative and later edits to historical
// punch data must not drift the totals.
type DayHours struct {
	Source  HoursSource
	TotalMs int64
	LunchMs int64
}

func (h DayHours) Final() bool { return h.Source == HoursFinal }

// ResolveDayHours picks the frozen approval figures when a record exists for
// the day, otherwise the live net computed from the work day.
func ResolveDayHours(day *WorkDay, rec *model.ApprovalRecord) DayHours {
	if rec != nil {
		return DayHours{Source: HoursFinal, TotalMs: rec.TotalMs, LunchMs: rec.LunchMs}
	}
	return DayHours{
		Source:  HoursLive,
		TotalMs: day.NetMs(),
		LunchMs: int64(day.LunchMinutes) * 60_000,
	}
}

// FindApproval returns the approval record for (employee, date), nil when
// the day is still pending.
func FindApproval(approvals []model.ApprovalRecord, employeeName, date string) *model.ApprovalRecord {
	for i := range approvals {
		if approvals[i].EmployeeName == employeeName && approvals[i].Date == date {
			return &approvals[i]
		}
	}
	return nil
}
