package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/seed"
	"github.com/shawnlecompte2-web/LogiVrac/store"
	"github.com/shawnlecompte2-web/LogiVrac/web/common"
	"github.com/shawnlecompte2-web/LogiVrac/web/middlewares"
)

// GetSettings returns the full shared configuration document.
func (ep *Endpoint) GetSettings(c *gin.Context) {
	settings, err := ep.loadSettings(c.Request.Context())
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "settings: load", err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(settings))
}

// ReplaceSettings overwrites the whole document. Admin surface only.
func (ep *Endpoint) ReplaceSettings(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermSettings) {
		forbid(c)
		return
	}

	var settings model.AppSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	if err := ep.Store.Put(c.Request.Context(), store.Settings, seed.SettingsKey, &settings); err != nil {
		ep.fail(c, http.StatusInternalServerError, "settings: replace", err)
		return
	}

	ep.Logger.Info("settings replaced", zap.String("user", actor.Name))
	c.JSON(http.StatusOK, common.NewSuccessResponse(settings))
}

type OptionDTO struct {
	Value string `json:"value" binding:"required"`
}

// AddOption appends one value to a named option list; duplicates are
// silently kept out.
func (ep *Endpoint) AddOption(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermSettings) {
		forbid(c)
		return
	}

	var dto OptionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	ep.mutateOptionList(c, c.Param("list"), func(values []string) []string {
		for _, v := range values {
			if v == dto.Value {
				return values
			}
		}
		return append(values, dto.Value)
	})
}

// RemoveOption deletes one value from a named option list.
func (ep *Endpoint) RemoveOption(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermSettings) {
		forbid(c)
		return
	}

	value := c.Param("value")
	ep.mutateOptionList(c, c.Param("list"), func(values []string) []string {
		out := values[:0]
		for _, v := range values {
			if v != value {
				out = append(out, v)
			}
		}
		return out
	})
}

func (ep *Endpoint) mutateOptionList(c *gin.Context, list string, mutate func([]string) []string) {
	ctx := c.Request.Context()
	settings, err := ep.loadSettings(ctx)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "settings: load", err)
		return
	}

	values := settings.OptionList(list)
	if values == nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("unknown option list"))
		return
	}
	*values = mutate(*values)

	err = ep.Store.Patch(ctx, store.Settings, seed.SettingsKey, map[string]any{list: *values})
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "settings: patch option list", err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{list: *values}))
}
