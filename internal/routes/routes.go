package routes

import (
	"url-shortener-api/internal/handlers"
	"url-shortener-api/internal/middleware"
	"url-shortener-api/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators the router is built from. The caller owns the
// policies and is responsible for starting and stopping them.
type Deps struct {
	Links       *handlers.LinkHandler
	GlobalLimit *ratelimit.Policy
	CreateLimit *ratelimit.Policy
	Logger      *logrus.Logger
	// TrustProxy makes the client identity come from X-Forwarded-For/X-Real-IP.
	TrustProxy bool
}

func SetupRoutes(d Deps) *gin.Engine {
	// Create a new GIN Router
	ginRouter := gin.New()
	if !d.TrustProxy {
		_ = ginRouter.SetTrustedProxies(nil)
	}

	ginRouter.Use(
		middleware.RequestLogger(d.Logger),
		gin.Recovery(),
		middleware.CORS(),
		// every route, including unknown ones, counts against the global policy
		middleware.RateLimit(d.GlobalLimit, middleware.ClientIP),
	)
	ginRouter.NoRoute(handlers.NotFound)

	// Health check endpoint
	ginRouter.GET("/health", d.Links.Health)

	api := ginRouter.Group("/api")
	{
		api.POST("/links", middleware.RateLimit(d.CreateLimit, middleware.ClientIP), d.Links.CreateLink)
		api.GET("/links", d.Links.ListLinks)
		api.GET("/links/stream", d.Links.StreamLinks)
		api.GET("/links/:id", d.Links.GetLink)
	}

	// Short link redirect
	ginRouter.GET("/:shortCode", d.Links.ResolveLink)

	return ginRouter
}
