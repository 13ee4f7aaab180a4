package main

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupOpsRoutes()
	a.setupAPIRoutes()
}

// setupOpsRoutes configures health, metrics and profiling endpoints
func (a *App) setupOpsRoutes() {
	a.Router.GET("/health", a.HealthHandler.Health)

	// Expose Prometheus metrics endpoint
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Expose pprof profiling endpoints (disable in production)
	if a.Config.Server.Env != "production" {
		a.Router.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		listings := api.Group("/listings")
		listings.GET("", a.ListingHandler.GetListings)
		listings.POST("/cache/invalidate", a.ListingHandler.InvalidateCache)
	}
}
