package middlewares

import (
	"AyurClinic/models"
	"AyurClinic/services"
	"AyurClinic/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// TokenAuthMiddleware validates the bearer token and attaches the live user
// record to the request. The role and employment status are re-read from the
// store on every request, so a demotion or deactivation takes effect
// immediately even for tokens issued before the change.
func TokenAuthMiddleware(tokenMaker *utils.TokenMaker, userService services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokenMaker.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := userService.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if !user.IsActive() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account is not active"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequirePermission restricts the route to users whose current permission set
// includes the capability.
func RequirePermission(capability models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !user.Permissions.Allows(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user attached by TokenAuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
