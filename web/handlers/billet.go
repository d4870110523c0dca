package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/store"
	"github.com/shawnlecompte2-web/LogiVrac/utils"
	"github.com/shawnlecompte2-web/LogiVrac/web/common"
	"github.com/shawnlecompte2-web/LogiVrac/web/middlewares"
)

// CreateBillet finalizes one transport ticket into the history. The id is
// client-assigned when the ticket was drafted offline; the write is an
// upsert keyed on it.
func (ep *Endpoint) CreateBillet(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermEnvoi) {
		forbid(c)
		return
	}

	var billet model.Billet
	if err := c.ShouldBindJSON(&billet); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}
	if billet.ID == "" {
		billet.ID = "BIL-" + uuid.NewString()
	}
	if billet.IssuerName == "" {
		billet.IssuerName = actor.Name
	}
	if billet.Status == "" {
		billet.Status = model.StatusPending
	}

	if err := ep.Store.Put(c.Request.Context(), store.History, billet.ID, &billet); err != nil {
		ep.fail(c, http.StatusInternalServerError, "billet: store", err)
		return
	}

	ep.Logger.Info("billet recorded",
		zap.String("id", billet.ID),
		zap.String("issuer", billet.IssuerName),
		zap.String("plaque", billet.EffectivePlaque()))
	c.JSON(http.StatusOK, common.NewSuccessResponse(billet))
}

// ListBillets returns the ticket history newest first, optionally filtered
// by status.
func (ep *Endpoint) ListBillets(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermHistory) {
		forbid(c)
		return
	}

	billets, err := ep.loadBillets(c.Request.Context(), store.ByCreatedDesc)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "billets: list", err)
		return
	}

	if status := c.Query("status"); status != "" {
		billets = utils.Filter(billets, func(b model.Billet) bool { return b.Status == status })
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(billets))
}

type ReceptionDTO struct {
	// Optional reception-side corrections.
	Destination      string `json:"destination,omitempty"`
	DestinationOther string `json:"destinationOther,omitempty"`
	Quantite         string `json:"quantite,omitempty"`
	TypeSol          string `json:"typeSol,omitempty"`
}

// ReceiveBillet is the reception approval: the receiving side confirms the
// load arrived, optionally correcting what was actually dumped.
func (ep *Endpoint) ReceiveBillet(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermReception) {
		forbid(c)
		return
	}

	var dto ReceptionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	fields := map[string]any{
		"status":       model.StatusApproved,
		"approvalDate": ep.Clock().Format("02/01/2006 15:04:05"),
		"approverName": actor.Name,
	}
	if dto.Destination != "" {
		fields["destination"] = dto.Destination
	}
	if dto.DestinationOther != "" {
		fields["destinationOther"] = dto.DestinationOther
	}
	if dto.Quantite != "" {
		fields["quantite"] = dto.Quantite
	}
	if dto.TypeSol != "" {
		fields["typeSol"] = dto.TypeSol
	}

	id := c.Param("id")
	err := ep.Store.Patch(c.Request.Context(), store.History, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("billet not found"))
		return
	}
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "billet: reception", err)
		return
	}

	ep.Logger.Info("billet received", zap.String("id", id), zap.String("approver", actor.Name))
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"id": id}))
}
