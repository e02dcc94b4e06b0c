package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration. Registrars are split into a
// public set and a protected set; the protected set sits behind the
// authentication middleware passed to Setup.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	public     []RouteRegistrar
	protected  []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Public adds registrars whose routes need no authentication
func (r *Router) Public(registrars ...RouteRegistrar) *Router {
	r.public = append(r.public, registrars...)
	return r
}

// Protected adds registrars whose routes require authentication
func (r *Router) Protected(registrars ...RouteRegistrar) *Router {
	r.protected = append(r.protected, registrars...)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup(authMiddleware ...gin.HandlerFunc) {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	secured := api.Group("", authMiddleware...)
	for _, registrar := range r.protected {
		registrar.RegisterRoutes(secured)
	}
}
