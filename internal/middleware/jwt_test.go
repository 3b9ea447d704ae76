package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	"github.com/noah-isme/mrp-capacity-api/internal/service"
)

func newAuthRouter(tokens *service.TokenService, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/plan", JWT(tokens), RequireRoles(roles...), func(c *gin.Context) {
		claims := ClaimsFrom(c)
		c.String(http.StatusOK, claims.UserID)
	})
	return router
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	router := newAuthRouter(service.NewTokenService(service.TokenConfig{Secret: "k"}))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/plan", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "UNAUTHORIZED")
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	router := newAuthRouter(service.NewTokenService(service.TokenConfig{Secret: "k"}))

	req := httptest.NewRequest(http.MethodPost, "/plan", nil)
	req.Header.Set("Authorization", "Token abc")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "invalid authorization header")
}

func TestJWTAndRolesAllowPlanner(t *testing.T) {
	tokens := service.NewTokenService(service.TokenConfig{Secret: "k"})
	router := newAuthRouter(tokens, models.RolePlanner)
	token, err := tokens.Sign(models.JWTClaims{UserID: "u-7", Role: models.RolePlanner}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/plan", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "u-7", recorder.Body.String())
}

func TestRequireRolesForbidsViewer(t *testing.T) {
	tokens := service.NewTokenService(service.TokenConfig{Secret: "k"})
	router := newAuthRouter(tokens, models.RolePlanner)
	token, err := tokens.Sign(models.JWTClaims{UserID: "u-8", Role: models.RoleViewer}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/plan", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), "VIEWER"))
}

func TestRequireRolesAlwaysAllowsAdmin(t *testing.T) {
	tokens := service.NewTokenService(service.TokenConfig{Secret: "k"})
	router := newAuthRouter(tokens, models.RolePlanner)
	token, err := tokens.Sign(models.JWTClaims{UserID: "root", Role: models.RoleAdmin}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/plan", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics, "/metrics"))
	router.GET("/orders/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders/42", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := recorder.Body.String()
	assert.Contains(t, body, `path="/orders/:id"`)
	assert.NotContains(t, body, `path="/metrics"`)
	assert.Equal(t, uint64(1), metrics.Snapshot().RequestsTotal)
}
