package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/store"
	"github.com/shawnlecompte2-web/LogiVrac/timeclock"
	"github.com/shawnlecompte2-web/LogiVrac/web/common"
	"github.com/shawnlecompte2-web/LogiVrac/web/middlewares"
)

// PayrollReport builds the week → group → employee report of final hours.
func (ep *Endpoint) PayrollReport(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermReports) {
		forbid(c)
		return
	}

	weeks, err := ep.buildPayroll(c)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "payroll: build", err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(weeks))
}

func (ep *Endpoint) buildPayroll(c *gin.Context) ([]timeclock.PayrollWeek, error) {
	ctx := c.Request.Context()
	settings, err := ep.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := ep.loadLogs(ctx)
	if err != nil {
		return nil, err
	}
	approvals, err := ep.loadApprovals(ctx, store.ByCreatedAsc)
	if err != nil {
		return nil, err
	}
	return timeclock.BuildPayrollReport(logs, settings.Users, approvals, ep.Policy), nil
}
