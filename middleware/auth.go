package middleware

import (
	"net/http"
	"strings"

	"bookify/utils"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserIDKey is where the authenticated customer's ID is stored.
	ContextUserIDKey = "userID"
	// ContextProviderIDKey is where the authenticated provider's ID is stored.
	ContextProviderIDKey = "providerID"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Insufficient authorization",
	})
}

// JWTAuthUserMiddleware authenticates a customer token and stores the caller's
// ID in the context under ContextUserIDKey.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		userID, role, err := utils.ExtractIDAndRoleFromToken(tokenString)
		if err != nil || userID == "" || role != utils.RoleUser {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// JWTAuthProviderMiddleware authenticates a provider token and stores the
// caller's ID in the context under ContextProviderIDKey.
func JWTAuthProviderMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		providerID, role, err := utils.ExtractIDAndRoleFromToken(tokenString)
		if err != nil || providerID == "" || role != utils.RoleProvider {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextProviderIDKey, providerID)
		c.Next()
	}
}
