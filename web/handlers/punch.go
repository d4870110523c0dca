package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/seed"
	"github.com/shawnlecompte2-web/LogiVrac/store"
	"github.com/shawnlecompte2-web/LogiVrac/timeclock"
	"github.com/shawnlecompte2-web/LogiVrac/web/common"
	"github.com/shawnlecompte2-web/LogiVrac/web/middlewares"
)

type PunchDTO struct {
	ID           string          `json:"id" binding:"required"`
	EmployeeName string          `json:"employeeName" binding:"required"`
	Type         model.PunchType `json:"type" binding:"required,oneof=in out"`
	Timestamp    string          `json:"timestamp" binding:"required"`
	Plaque       string          `json:"plaque,omitempty"`
	LunchMinutes *int            `json:"lunchMinutes,omitempty"`
}

// RecordPunch stores one swipe. The id is client-assigned and the write is
// an upsert, so offline retries cannot double-record. A driver punching in
// with a plate the roster has never seen teaches it to the settings list.
func (ep *Endpoint) RecordPunch(c *gin.Context) {
	var dto PunchDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	log := model.PunchLog{
		ID:           dto.ID,
		EmployeeName: dto.EmployeeName,
		Type:         dto.Type,
		Timestamp:    dto.Timestamp,
		Plaque:       dto.Plaque,
		LunchMinutes: dto.LunchMinutes,
	}

	ctx := c.Request.Context()
	if err := ep.Store.Put(ctx, store.PunchLogs, log.ID, &log); err != nil {
		ep.fail(c, http.StatusInternalServerError, "punch: store", err)
		return
	}

	if log.Type == model.PunchIn && log.Plaque != "" {
		ep.learnPlaque(c, log.Plaque)
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(log))
}

// learnPlaque appends an unknown plate to settings.plaques when the caller
// is a driver-class account. Best effort, a failure never fails the punch.
func (ep *Endpoint) learnPlaque(c *gin.Context, plaque string) {
	user := middlewares.CurrentUser(c)
	if user == nil || !user.Role.IsDriverClass() {
		return
	}

	ctx := c.Request.Context()
	settings, err := ep.loadSettings(ctx)
	if err != nil {
		ep.Logger.Warn("punch: learn plaque: load settings", zap.Error(err))
		return
	}
	for _, known := range settings.Plaques {
		if known == plaque {
			return
		}
	}

	plaques := append(settings.Plaques, plaque)
	err = ep.Store.Patch(ctx, store.Settings, seed.SettingsKey, map[string]any{"plaques": plaques})
	if err != nil {
		ep.Logger.Warn("punch: learn plaque: patch settings", zap.Error(err))
		return
	}
	ep.Logger.Info("learned plaque", zap.String("plaque", plaque), zap.String("user", user.Name))
}

// PunchStatus reports the live state for one employee; without an employee
// query parameter it answers for the caller.
func (ep *Endpoint) PunchStatus(c *gin.Context) {
	employee := c.Query("employee")
	if employee == "" {
		if user := middlewares.CurrentUser(c); user != nil {
			employee = user.Name
		}
	}
	if employee == "" {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("employee is required"))
		return
	}

	logs, err := ep.loadLogs(c.Request.Context())
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "punch status: load logs", err)
		return
	}

	status := timeclock.StatusFor(logs, employee, ep.Clock(), ep.Policy)
	c.JSON(http.StatusOK, common.NewSuccessResponse(status))
}
