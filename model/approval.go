package model

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// ApprovalRecord freezes one employee's net hours for one calendar day.
// TotalMs and LunchMs are the approver-validated figures and take precedence
// over any recompute from the punch stream. Records are written once and
// never mutated.
type ApprovalRecord struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employeeName"`
	Date         string `json:"date"` // YYYY-MM-DD
	TotalMs      int64  `json:"totalMs"`
	LunchMs      int64  `json:"lunchMs,omitempty"`
	Status       string `json:"status"`
	ApproverName string `json:"approverName,omitempty"`
	ApprovalDate string `json:"approvalDate,omitempty"`
}

// Key is the natural de-duplication key: one approval per employee per day.
func (a *ApprovalRecord) Key() string {
	return ApprovalKey(a.EmployeeName, a.Date)
}

func ApprovalKey(employeeName, date string) string {
	return date + "|" + employeeName
}
