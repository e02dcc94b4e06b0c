package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingRegistrar struct {
	path string
}

func (r pingRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(r.path, func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}

	NewRouter(engine).
		Public(pingRegistrar{path: "/open"}).
		Protected(pingRegistrar{path: "/closed"}).
		Setup(deny)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/closed", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterAPIVersion(t *testing.T) {
	engine := gin.New()

	NewRouter(engine, WithAPIVersion("v2")).
		Public(pingRegistrar{path: "/open"}).
		Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v2/open", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/open", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
