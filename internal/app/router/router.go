// Package router assembles the gin engine from the feature handlers.
package router

import (
	"fmt"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "prep_tracker/internal/feature/auth/transport/handler"
	dashboardhandler "prep_tracker/internal/feature/dashboard/transport/handler"
	trackerhandler "prep_tracker/internal/feature/tracker/transport/handler"
	platformhandler "prep_tracker/internal/platform/http/handler"
	"prep_tracker/internal/platform/http/middleware"
	jwtmw "prep_tracker/internal/platform/jwt"
)

// Op is a set of CRUD operations exposed for a resource.
type Op uint8

const (
	OpList Op = 1 << iota
	OpCreate
	OpUpdate
	OpDelete

	OpAll = OpList | OpCreate | OpUpdate | OpDelete
)

// Has reports whether every operation in o is in op.
func (op Op) Has(o Op) bool { return op&o == o }

// ResourceHandler is the CRUD surface of one owner-scoped resource.
type ResourceHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// Route binds a resource path under /api to the operations it exposes.
type Route struct {
	Name string
	Ops  Op
}

// Routes is the resource table. Custom topics are routed separately below sections.
var Routes = []Route{
	{Name: "dsa", Ops: OpList | OpCreate | OpUpdate},
	{Name: "cs", Ops: OpList | OpCreate | OpUpdate},
	{Name: "projects", Ops: OpAll},
	{Name: "mocks", Ops: OpList | OpCreate | OpDelete},
	{Name: "logs", Ops: OpList | OpCreate | OpUpdate},
	{Name: "sections", Ops: OpAll},
}

// Handlers are the endpoints mounted by NewRouter.
type Handlers struct {
	Health    *platformhandler.HealthHandler
	Auth      *authhandler.AuthHandler
	Dashboard *dashboardhandler.DashboardHandler
	Topics    *trackerhandler.TopicHandler
	// Resources is keyed by Route.Name.
	Resources map[string]ResourceHandler
}

// Options configures the middleware stack.
type Options struct {
	JWTSecret  string
	Revocation jwtmw.RevocationChecker
	CORS       cors.Config
	Logger     *slog.Logger
}

// NewRouter builds the engine. It returns an error when a route in Routes has no handler.
func NewRouter(h Handlers, opts Options) (*gin.Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), cors.New(opts.CORS))

	// public
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.POST("/api/register", h.Auth.Register)
	r.POST("/api/login", h.Auth.Login)

	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired(opts.JWTSecret, opts.Revocation))
	{
		api.POST("/logout", h.Auth.Logout)
		api.GET("/user", h.Auth.Me)
		api.GET("/dashboard", h.Dashboard.Get)

		for _, route := range Routes {
			rh, ok := h.Resources[route.Name]
			if !ok {
				return nil, fmt.Errorf("router: no handler for resource %q", route.Name)
			}
			mount(api, route, rh)
		}

		api.GET("/sections/:id/topics", h.Topics.ListBySection)
		api.POST("/sections/:id/topics", h.Topics.CreateInSection)
		api.PATCH("/topics/:id", h.Topics.Update)
		api.DELETE("/topics/:id", h.Topics.Delete)
	}

	return r, nil
}

func mount(g *gin.RouterGroup, route Route, rh ResourceHandler) {
	base := "/" + route.Name
	if route.Ops.Has(OpList) {
		g.GET(base, rh.List)
	}
	if route.Ops.Has(OpCreate) {
		g.POST(base, rh.Create)
	}
	if route.Ops.Has(OpUpdate) {
		g.PATCH(base+"/:id", rh.Update)
	}
	if route.Ops.Has(OpDelete) {
		g.DELETE(base+"/:id", rh.Delete)
	}
}
