package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/store"
	"github.com/shawnlecompte2-web/LogiVrac/timeclock"
	"github.com/shawnlecompte2-web/LogiVrac/web/common"
	"github.com/shawnlecompte2-web/LogiVrac/web/middlewares"
)

// PendingApprovals returns the queue visible to the calling approver,
// grouped by plate tag.
func (ep *Endpoint) PendingApprovals(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermApproval) {
		forbid(c)
		return
	}

	ctx := c.Request.Context()
	settings, err := ep.loadSettings(ctx)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "pending: load settings", err)
		return
	}
	logs, err := ep.loadLogs(ctx)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "pending: load logs", err)
		return
	}
	approvals, err := ep.loadApprovals(ctx, store.ByCreatedAsc)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "pending: load approvals", err)
		return
	}

	queue := timeclock.PendingQueue(logs, settings.Users, approvals, actor, ep.Policy)
	c.JSON(http.StatusOK, common.NewSuccessResponse(queue))
}

// ApproveHours freezes one (employee, date) with the approver-edited times.
// A second attempt on the same day answers 409 and leaves the first record
// untouched.
func (ep *Endpoint) ApproveHours(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermApproval) {
		forbid(c)
		return
	}

	var req timeclock.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	ctx := c.Request.Context()
	settings, err := ep.loadSettings(ctx)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "approve: load settings", err)
		return
	}
	target := settings.FindUserByName(req.EmployeeName)
	if target == nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("unknown employee"))
		return
	}
	if !timeclock.CanView(actor.Role, target.Role) {
		forbid(c)
		return
	}

	approver := timeclock.Approver{Store: ep.Store, Clock: ep.Clock}
	rec, err := approver.Approve(ctx, actor, req)
	if errors.Is(err, timeclock.ErrAlreadyApproved) {
		c.JSON(http.StatusConflict, common.NewErrorResponse(err.Error()))
		return
	}
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "approve", err)
		return
	}

	ep.Logger.Info("hours approved",
		zap.String("employee", rec.EmployeeName),
		zap.String("date", rec.Date),
		zap.String("approver", actor.Name),
		zap.Int64("totalMs", rec.TotalMs))
	c.JSON(http.StatusOK, common.NewSuccessResponse(rec))
}

// ListApprovals returns the audit trail, newest first.
func (ep *Endpoint) ListApprovals(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermApproval) {
		forbid(c)
		return
	}

	approvals, err := ep.loadApprovals(c.Request.Context(), store.ByCreatedDesc)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "approvals: list", err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(approvals))
}
