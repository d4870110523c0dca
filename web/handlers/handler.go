package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/seed"
	"github.com/shawnlecompte2-web/LogiVrac/store"
	"github.com/shawnlecompte2-web/LogiVrac/timeclock"
	"github.com/shawnlecompte2-web/LogiVrac/web/common"
)

// Endpoint carries the dependencies every handler needs. One instance is
// shared across the router.
type Endpoint struct {
	Store  store.Store
	Logger *zap.Logger
	Policy timeclock.DoubleInPolicy

	// SigningSecret is the base64-encoded HS256 key; TokenTTLSecs the
	// identity token lifetime.
	SigningSecret string
	TokenTTLSecs  int64

	Clock func() time.Time
}

// Register wires the protected API surface onto the router group.
func Register(r *gin.RouterGroup, ep *Endpoint) {
	if ep.Clock == nil {
		ep.Clock = time.Now
	}

	r.POST("/punches", ep.RecordPunch)
	r.GET("/punches/status", ep.PunchStatus)

	r.GET("/approvals/pending", ep.PendingApprovals)
	r.POST("/approvals", ep.ApproveHours)
	r.GET("/approvals", ep.ListApprovals)

	r.GET("/reports/payroll", ep.PayrollReport)
	r.GET("/reports/payroll/export", ep.PayrollExport)

	r.GET("/production", ep.Production)

	r.POST("/billets", ep.CreateBillet)
	r.GET("/billets", ep.ListBillets)
	r.POST("/billets/:id/reception", ep.ReceiveBillet)

	r.GET("/settings", ep.GetSettings)
	r.PUT("/settings", ep.ReplaceSettings)
	r.POST("/settings/options/:list", ep.AddOption)
	r.DELETE("/settings/options/:list/:value", ep.RemoveOption)
}

// RegisterPublic wires the routes that run without a token.
func RegisterPublic(r *gin.RouterGroup, ep *Endpoint) {
	if ep.Clock == nil {
		ep.Clock = time.Now
	}
	r.POST("/login", ep.Login)
}

func (ep *Endpoint) fail(c *gin.Context, status int, op string, err error) {
	ep.Logger.Error(op, zap.Error(err))
	c.JSON(status, common.NewErrorResponse(err.Error()))
}

func (ep *Endpoint) loadSettings(ctx context.Context) (*model.AppSettings, error) {
	doc, err := ep.Store.Get(ctx, store.Settings, seed.SettingsKey)
	if err != nil {
		return nil, err
	}
	settings, err := store.Decode[model.AppSettings](*doc)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (ep *Endpoint) loadLogs(ctx context.Context) ([]model.PunchLog, error) {
	docs, err := ep.Store.List(ctx, store.PunchLogs, store.ByCreatedAsc)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[model.PunchLog](docs), nil
}

func (ep *Endpoint) loadApprovals(ctx context.Context, order store.OrderBy) ([]model.ApprovalRecord, error) {
	docs, err := ep.Store.List(ctx, store.Approvals, order)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[model.ApprovalRecord](docs), nil
}

func (ep *Endpoint) loadBillets(ctx context.Context, order store.OrderBy) ([]model.Billet, error) {
	docs, err := ep.Store.List(ctx, store.History, order)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[model.Billet](docs), nil
}

func forbid(c *gin.Context) {
	c.JSON(http.StatusForbidden, common.NewErrorResponse("insufficient permissions"))
}
