package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookify/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(mw gin.HandlerFunc, ctxKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", mw, func(c *gin.Context) {
		id, _ := c.Get(ctxKey)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthUserMiddleware(t *testing.T) {
	r := newAuthRouter(JWTAuthUserMiddleware(), ContextUserIDKey)

	token, err := utils.GenerateToken("cust-a", utils.RoleUser, time.Hour)
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cust-a")
}

func TestJWTAuthUserMiddlewareRejects(t *testing.T) {
	r := newAuthRouter(JWTAuthUserMiddleware(), ContextUserIDKey)

	providerToken, err := utils.GenerateToken("prov-1", utils.RoleProvider, time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateToken("cust-a", utils.RoleUser, -time.Minute)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"no header":   "",
		"not bearer":  "Basic abc",
		"empty token": "Bearer ",
		"garbage":     "Bearer garbage",
		"wrong role":  "Bearer " + providerToken,
		"expired":     "Bearer " + expired,
	} {
		w := get(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestJWTAuthProviderMiddleware(t *testing.T) {
	r := newAuthRouter(JWTAuthProviderMiddleware(), ContextProviderIDKey)

	token, err := utils.GenerateToken("prov-1", utils.RoleProvider, time.Hour)
	require.NoError(t, err)
	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "prov-1")

	userToken, err := utils.GenerateToken("cust-a", utils.RoleUser, time.Hour)
	require.NoError(t, err)
	w = get(r, "Bearer "+userToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
