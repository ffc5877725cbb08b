package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler/pages"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

const apiPrefix = "/api"

const msgNotFound = "Not found"

// Handler registers JSON routes on the /api group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// LegacyHandler also serves the plain-text legacy routes.
type LegacyHandler interface {
	Handler
	RegisterLegacyRoutes(*gin.RouterGroup)
}

type Handlers struct {
	Appointment LegacyHandler
	Blood       LegacyHandler
	Organ       LegacyHandler
	Directory   LegacyHandler
	Pages       *pages.Handler
	Health      interface{ RegisterRoutes(gin.IRouter) }
	Metrics     interface {
		RegisterRoutes(r gin.IRoutes, path string)
	}
}

type Config struct {
	LegacyEnabled bool
	LegacyPrefix  string
	// MetricsPath is only mounted when Handlers.Metrics is set.
	MetricsPath string
	CORS        middleware.CORSConfig
	SizeLimit   middleware.SizeLimitConfig
	Cache       middleware.CacheConfig
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Metrics
}

type Router struct {
	engine   *gin.Engine
	handlers Handlers
	config   Config
}

func NewRouter(handlers Handlers, config Config) *Router {
	// Set production mode
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	if config.Metrics == nil {
		config.Metrics = metrics.NewNop()
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}

	engine := gin.New() // Use New() instead of Default() for more control

	r := &Router{
		engine:   engine,
		handlers: handlers,
		config:   config,
	}

	// Add core middlewares
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(config.Metrics),
		middleware.CORS(config.CORS),
	)

	if config.RateLimiter != nil {
		engine.Use(config.RateLimiter.RateLimit())
	}
	if config.SizeLimit.MaxBodySize > 0 {
		engine.Use(middleware.SizeLimit(config.SizeLimit))
	}

	return r
}

func (r *Router) Setup() {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(r.engine)
	}
	if r.handlers.Metrics != nil {
		r.handlers.Metrics.RegisterRoutes(r.engine, r.config.MetricsPath)
	}

	api := r.engine.Group(apiPrefix)
	for _, h := range r.resourceHandlers() {
		h.RegisterRoutes(api)
	}

	if r.config.LegacyEnabled {
		legacy := r.engine.Group(r.config.LegacyPrefix)
		for _, h := range r.resourceHandlers() {
			h.RegisterLegacyRoutes(legacy)
		}
	}

	if r.handlers.Pages != nil {
		site := r.engine.Group("", middleware.Cache(r.config.Cache))
		r.handlers.Pages.RegisterRoutes(site)
	}

	r.engine.NoRoute(r.notFound)
}

func (r *Router) resourceHandlers() []LegacyHandler {
	all := []LegacyHandler{
		r.handlers.Appointment,
		r.handlers.Blood,
		r.handlers.Organ,
		r.handlers.Directory,
	}
	handlers := make([]LegacyHandler, 0, len(all))
	for _, h := range all {
		if h != nil {
			handlers = append(handlers, h)
		}
	}
	return handlers
}

// notFound answers /api paths with JSON and everything else with the asset
// at that path or a plain-text 404.
func (r *Router) notFound(c *gin.Context) {
	path := c.Request.URL.Path
	if path == apiPrefix || strings.HasPrefix(path, apiPrefix+"/") {
		c.JSON(http.StatusNotFound, httputil.Response{
			Success: false,
			Message: msgNotFound,
		})
		return
	}

	if r.handlers.Pages != nil && r.handlers.Pages.ServeAsset(c) {
		return
	}

	c.String(http.StatusNotFound, pages.MsgPageNotFound)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
