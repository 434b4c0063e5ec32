package handlers

import (
	"net/http"

	"bookify/fault"
	"bookify/middleware"
	"bookify/utils"

	"github.com/gin-gonic/gin"
)

// contextID retrieves a principal ID set by an auth middleware. It aborts the
// request with 401 when the key is missing or malformed.
func contextID(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid principal ID in context"})
		return "", false
	}
	return id, true
}

func userID(c *gin.Context) (string, bool) {
	return contextID(c, middleware.ContextUserIDKey)
}

func providerID(c *gin.Context) (string, bool) {
	return contextID(c, middleware.ContextProviderIDKey)
}

// respondError translates a service error into its HTTP shape.
func respondError(c *gin.Context, message string, err error) {
	utils.JSONError(c, fault.HTTPStatus(err), message, fault.Reason(err))
}
