package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shawnlecompte2-web/LogiVrac/security"
	"github.com/shawnlecompte2-web/LogiVrac/web/common"
)

type LoginDTO struct {
	Code string `json:"code" binding:"required,numeric,len=4"`
}

// Login resolves a 4-digit PIN against the roster and returns the account
// plus a signed identity token. Unknown PINs get a deliberately vague 401.
func (ep *Endpoint) Login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	settings, err := ep.loadSettings(c.Request.Context())
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "login: load settings", err)
		return
	}

	user := settings.FindUserByCode(dto.Code)
	if user == nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("code invalide"))
		return
	}

	token, err := security.CreateIdentityToken(user, ep.SigningSecret, ep.TokenTTLSecs)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "login: sign token", err)
		return
	}

	ep.Logger.Info("login", zap.String("user", user.Name), zap.String("role", string(user.Role)))
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"user":  user,
		"token": token,
	}))
}
