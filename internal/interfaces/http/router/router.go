package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegistrarFunc adapts a function to the RouteRegistrar interface, for
// handlers that expose more than one registration method.
type RegistrarFunc func(rg *gin.RouterGroup)

func (f RegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) { f(rg) }

// Router manages HTTP route registration across three tiers: public
// routes, authenticated routes, and routes that additionally require a
// resolved business scope.
type Router struct {
	engine           *gin.Engine
	apiVersion       string
	authMiddleware   []gin.HandlerFunc
	scopedMiddleware []gin.HandlerFunc
	public           []RouteRegistrar
	authenticated    []RouteRegistrar
	scoped           []RouteRegistrar
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

// UseAuth sets the middleware applied to every authenticated route
func (r *Router) UseAuth(middleware ...gin.HandlerFunc) *Router {
	r.authMiddleware = append(r.authMiddleware, middleware...)
	return r
}

// UseScope sets the additional middleware applied to business-scoped routes
func (r *Router) UseScope(middleware ...gin.HandlerFunc) *Router {
	r.scopedMiddleware = append(r.scopedMiddleware, middleware...)
	return r
}

// RegisterPublic adds a registrar whose routes need no authentication
func (r *Router) RegisterPublic(registrar RouteRegistrar) *Router {
	r.public = append(r.public, registrar)
	return r
}

// RegisterAuthenticated adds a registrar whose routes require a signed-in
// principal but no business scope (session, onboarding, invite acceptance)
func (r *Router) RegisterAuthenticated(registrar RouteRegistrar) *Router {
	r.authenticated = append(r.authenticated, registrar)
	return r
}

// Register adds a registrar whose routes require a resolved business scope
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.scoped = append(r.scoped, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	authed := api.Group("")
	authed.Use(r.authMiddleware...)
	for _, registrar := range r.authenticated {
		registrar.RegisterRoutes(authed)
	}

	scoped := authed.Group("")
	scoped.Use(r.scopedMiddleware...)
	for _, registrar := range r.scoped {
		registrar.RegisterRoutes(scoped)
	}
}
