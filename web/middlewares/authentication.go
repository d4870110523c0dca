package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/security"
	"github.com/shawnlecompte2-web/LogiVrac/web/common"
)

const identityKey = "identity"

// Authentication checks for a valid Bearer token (or the application
// cookie the mobile webview falls back to) and puts the authenticated
// account into the gin context.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie("logivrac.ApplicationCookie")
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = parts[1]
		}

		claims, err := security.ParseIdentityToken(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(identityKey, claims.User())
		c.Next()
	}
}

// CurrentUser returns the authenticated account set by Authentication, nil
// on unprotected routes.
func CurrentUser(c *gin.Context) *model.UserAccount {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.UserAccount)
	return user
}
