package middleware

import (
	"net/http"
	"strings"

	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

const adminContextKey = "currentAdmin"

func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth rejects requests without a valid bearer token and stores
// the resolved admin on the context.
func RequireAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "error.missingToken", "authentication required", nil)
			c.Abort()
			return
		}

		admin, err := auth.Authenticate(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.invalidToken", "invalid or expired token", nil)
			c.Abort()
			return
		}

		c.Set(adminContextKey, admin)
		c.Next()
	}
}

// RequirePermission gates a route on one permission string. Must run
// after RequireAuth.
func RequirePermission(auth *services.AuthService, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := CurrentAdmin(c)
		if admin == nil {
			utils.JSONError(c, http.StatusUnauthorized, "error.missingToken", "authentication required", nil)
			c.Abort()
			return
		}

		ok, err := auth.HasPermission(admin.ID, permission)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "error.internal", "permission lookup failed", nil)
			c.Abort()
			return
		}
		if !ok {
			utils.JSONError(c, http.StatusForbidden, "error.forbidden", "missing permission: "+permission, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentAdmin returns the admin set by RequireAuth, or nil.
func CurrentAdmin(c *gin.Context) *models.Admin {
	v, ok := c.Get(adminContextKey)
	if !ok {
		return nil
	}
	admin, ok := v.(*models.Admin)
	if !ok {
		return nil
	}
	return admin
}
