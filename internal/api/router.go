package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rohit/cms-editorial/internal/api/handlers"
	"github.com/rohit/cms-editorial/internal/api/middleware"
	"github.com/rohit/cms-editorial/internal/config"
	"github.com/rohit/cms-editorial/internal/metrics"
	"github.com/rohit/cms-editorial/internal/service/category"
	"github.com/rohit/cms-editorial/internal/service/workflow"
	"github.com/rs/zerolog"
)

// Router owns the gin engine with every route registered
type Router struct {
	engine *gin.Engine
}

// NewRouter creates a new API router. auditQueue and metricsCollector may be nil.
func NewRouter(
	db handlers.Pinger,
	authenticator middleware.Authenticator,
	workflowSvc *workflow.Service,
	categorySvc *category.Service,
	auditQueue handlers.QueueStats,
	metricsCollector *metrics.Collector,
	logger zerolog.Logger,
	cfg *config.Config,
) *Router {
	// Set gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Global middleware
	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.RequestInfo())
	engine.Use(middleware.Logger(logger))
	engine.Use(middleware.CORS())

	if metricsCollector != nil {
		engine.Use(middleware.Metrics(metricsCollector, "/metrics", "/live"))
	}

	// Create handlers
	healthHandler := handlers.NewHealthHandler(db, auditQueue)
	articleHandler := handlers.NewArticleHandler(workflowSvc)
	categoryHandler := handlers.NewCategoryHandler(categorySvc)

	// Health routes (no version prefix)
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/live", healthHandler.Live)

	// Metrics endpoint
	if cfg.Prometheus.Enabled {
		engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// API v1 routes
	v1 := engine.Group("/v1")
	v1.Use(middleware.JWTAuth(authenticator))
	{
		articles := v1.Group("/articles")
		{
			articles.POST("", articleHandler.Create)
			articles.GET("/slug/:slug", articleHandler.GetBySlug)
			articles.GET("/:id", articleHandler.Get)
			articles.PUT("/:id", articleHandler.Update)
			articles.DELETE("/:id", articleHandler.Delete)
			articles.POST("/:id/submit", articleHandler.Submit)
			articles.POST("/:id/approve", articleHandler.Approve)
			articles.POST("/:id/reject", articleHandler.Reject)
			articles.POST("/:id/publish", articleHandler.Publish)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("/tree", categoryHandler.Tree)
			categories.POST("", categoryHandler.Create)
			categories.PUT("/:id/parent", categoryHandler.Move)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", categoryHandler.ListTags)
			tags.POST("", categoryHandler.CreateTag)
		}
	}

	return &Router{engine: engine}
}

// Engine returns the gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
