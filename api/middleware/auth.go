package middleware

import (
	"net/http"
	"strings"

	"besties/auth"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// JWTAuthMiddleware - проверяет Authorization: Bearer <token> и кладет id пользователя в контекст
func JWTAuthMiddleware(tokens *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":    "Authentication required.",
				"statusCode": http.StatusUnauthorized,
			})
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":    "Invalid or expired token.",
				"statusCode": http.StatusUnauthorized,
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID возвращает id пользователя, выставленный JWTAuthMiddleware
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
