package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authUtils "cityfix-be/utils"
)

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's email claim in the gin context for downstream checks.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "forbidden access"})
			c.Abort()
			return
		}

		// Extracting token from "Bearer <token>" format
		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		claims, err := authUtils.ParseToken(tokenString, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "forbidden access"})
			c.Abort()
			return
		}

		email, ok := claims["email"].(string)
		if !ok || email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "forbidden access"})
			c.Abort()
			return
		}

		c.Set("email", email)
		c.Next()
	}
}
