package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/hoststay-app/utils"
)

// AuthMiddleware memvalidasi bearer token dan menaruh identitas caller +
// tenant id ke context request. Semua handler di bawahnya membaca tenant
// dari sini, bukan dari lookup global.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid token format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if utils.IsTokenBlacklisted(tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token is no longer valid"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if claims.UserID == 0 || claims.TenantID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid identity in token"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("tenant_id", claims.TenantID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// TenantID membaca tenant id yang sudah dipasang AuthMiddleware.
func TenantID(c *gin.Context) uint {
	if v, ok := c.Get("tenant_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
