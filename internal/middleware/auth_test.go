package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/backend/internal/models"
	"github.com/careerlens/backend/internal/service"
)

func testRouter(tokens *service.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/me", Auth(tokens), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	router.GET("/admin", Auth(tokens), AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func get(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMissingHeader(t *testing.T) {
	router := testRouter(service.NewTokenService("secret"))
	w := get(router, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestAuthMalformedHeader(t *testing.T) {
	router := testRouter(service.NewTokenService("secret"))

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	router := testRouter(service.NewTokenService("secret"))
	w := get(router, "/me", "bogus.token.value")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidToken(t *testing.T) {
	tokens := service.NewTokenService("secret")
	router := testRouter(tokens)

	raw, err := tokens.Issue(&models.User{ID: 7, Role: models.RoleUser})
	require.NoError(t, err)

	w := get(router, "/me", raw)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAdminOnlyRejectsUserRole(t *testing.T) {
	tokens := service.NewTokenService("secret")
	router := testRouter(tokens)

	raw, err := tokens.Issue(&models.User{ID: 7, Role: models.RoleUser})
	require.NoError(t, err)

	// Valid token, wrong role: 403, never 401.
	w := get(router, "/admin", raw)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnlyAllowsAdminRole(t *testing.T) {
	tokens := service.NewTokenService("secret")
	router := testRouter(tokens)

	raw, err := tokens.Issue(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	w := get(router, "/admin", raw)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRouteWithoutTokenIsUnauthorized(t *testing.T) {
	router := testRouter(service.NewTokenService("secret"))
	w := get(router, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
