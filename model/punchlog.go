package model

type PunchType string

const (
	PunchIn  PunchType = "in"
	PunchOut PunchType = "out"
)

// PunchLog is one swipe event. Timestamp keeps the legacy locale format
// "DD/MM/YYYY, HH:MM:SS" exactly as the mobile clients write it; parsing
// happens in the timeclock package. Plaque is set only on "in", LunchMinutes
// only on "out" (nil when undeclared so the stored document omits it).
type PunchLog struct {
	ID           string    `json:"id"`
	EmployeeName string    `json:"employeeName"`
	Type         PunchType `json:"type"`
	Timestamp    string    `json:"timestamp"`
	Plaque       string    `json:"plaque,omitempty"`
	LunchMinutes *int      `json:"lunchMinutes,omitempty"`
}
