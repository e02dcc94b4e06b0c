package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentops/backend/internal/infrastructure/auth"
	"github.com/rentops/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-that-is-long-enough",
		RefreshSecret:          "test-refresh-secret-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "rentops-test",
	})
}

func newProtectedRouter(jwtService *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuth(jwtService, zap.NewNop())}, extra...)
	r.GET("/protected", append(handlers, func(c *gin.Context) {
		tenantID, err := TenantID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tenant_id": tenantID.String()})
	})...)
	return r
}

func TestJWTAuth(t *testing.T) {
	jwtService := newTestJWTService()
	tenantID := uuid.New()
	userID := uuid.New()

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Email:    "owner@example.com",
		Role:     "owner",
	})
	require.NoError(t, err)

	t.Run("valid token passes and exposes claims", func(t *testing.T) {
		r := newProtectedRouter(jwtService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), tenantID.String())
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		r := newProtectedRouter(jwtService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		r := newProtectedRouter(jwtService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token is not accepted as access token", func(t *testing.T) {
		r := newProtectedRouter(jwtService)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("role gate allows matching role", func(t *testing.T) {
		r := newProtectedRouter(jwtService, RequireRole("owner", "manager"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("role gate rejects other roles", func(t *testing.T) {
		r := newProtectedRouter(jwtService, RequireRole("manager"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})
}
