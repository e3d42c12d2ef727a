package router

import (
	"github.com/gin-gonic/gin"
)

// setupHealthRoutes registers the health check endpoints, backed by the
// container's periodic checker.
func (r *Router) setupHealthRoutes() {
	handler := gin.WrapF(r.Container.Health.HTTPHandler())

	// Register both health endpoint paths for compatibility
	r.Engine.GET("/health", handler)
	r.Engine.GET("/api/health", handler)
}
