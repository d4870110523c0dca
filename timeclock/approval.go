package timeclock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/store"
)

// ErrAlreadyApproved rejects a second approval attempt for a day that is
// already frozen.
var ErrAlreadyApproved = errors.New("hours already approved for this employee and date")

// ApproveRequest carries the approver-edited values a day is finalized
// with. InTime/OutTime are "HH:MM" clock values on the approved date.
type ApproveRequest struct {
	EmployeeName string `json:"employeeName" binding:"required"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	InTime       string `json:"inTime" binding:"required"`
	OutTime      string `json:"outTime" binding:"required"`
	LunchMinutes int    `json:"lunchMinutes"`
}

// ComputeNet recomputes the net payable duration from an approver-edited
// triple: (out − in) − lunch, floored at zero.
func ComputeNet(inTime, outTime string, lunchMinutes int) (int64, error) {
	inMs, err := ParseClock(inTime)
	if err != nil {
		return 0, err
	}
	outMs, err := ParseClock(outTime)
	if err != nil {
		return 0, err
	}
	net := outMs - inMs - int64(lunchMinutes)*60_000
	if net < 0 {
		net = 0
	}
	return net, nil
}

// Approver runs the UNAPPROVED → APPROVED transition. The transition is
// terminal: records are created exactly once per (employee, date) through
// the store's conditional write and never amended.
type Approver struct {
	Store store.Store
	Clock func() time.Time
}

func NewApprover(s store.Store) *Approver {
	return &Approver{Store: s, Clock: time.Now}
}

// Approve freezes one employee's day. Two approvers racing on the same
// (employee, date) key cannot both win: the second write lands on the
// occupied key and reports ErrAlreadyApproved.
func (a *Approver) Approve(ctx context.Context, approver *model.UserAccount, req ApproveRequest) (*model.ApprovalRecord, error) {
	totalMs, err := ComputeNet(req.InTime, req.OutTime, req.LunchMinutes)
	if err != nil {
		return nil, fmt.Errorf("invalid approval times: %w", err)
	}

	now := a.Clock()
	rec := model.ApprovalRecord{
		ID:           "APP-" + uuid.NewString(),
		EmployeeName: req.EmployeeName,
		Date:         req.Date,
		TotalMs:      totalMs,
		LunchMs:      int64(req.LunchMinutes) * 60_000,
		Status:       model.StatusApproved,
		ApproverName: approver.Name,
		ApprovalDate: now.Format("02/01/2006 15:04:05"),
	}

	err = a.Store.CreateIfAbsent(ctx, store.Approvals, rec.Key(), &rec)
	if errors.Is(err, store.ErrDuplicateKey) {
		return nil, ErrAlreadyApproved
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
