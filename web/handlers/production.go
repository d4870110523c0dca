package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shawnlecompte2-web/LogiVrac/store"
	"github.com/shawnlecompte2-web/LogiVrac/timeclock"
	"github.com/shawnlecompte2-web/LogiVrac/web/common"
	"github.com/shawnlecompte2-web/LogiVrac/web/middlewares"
)

// Production reports trips, tonnage and the per-material breakdown for one
// employee and date. Defaults to the caller and today.
func (ep *Endpoint) Production(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil {
		forbid(c)
		return
	}

	employee := c.Query("employee")
	if employee == "" {
		employee = actor.Name
	}
	date := c.Query("date")
	if date == "" {
		date = timeclock.DayKeyOf(ep.Clock())
	}

	ctx := c.Request.Context()
	settings, err := ep.loadSettings(ctx)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "production: load settings", err)
		return
	}
	subject := settings.FindUserByName(employee)
	if subject == nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("unknown employee"))
		return
	}

	logs, err := ep.loadLogs(ctx)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "production: load logs", err)
		return
	}
	billets, err := ep.loadBillets(ctx, store.ByCreatedAsc)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "production: load billets", err)
		return
	}

	plaque := timeclock.ActivePlaque(logs, employee, date)
	prod := timeclock.ComputeDailyProduction(billets, subject, plaque, date)
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"employee":     employee,
		"date":         date,
		"activePlaque": plaque,
		"production":   prod,
	}))
}
