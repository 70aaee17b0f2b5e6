package http

import "github.com/gin-gonic/gin"

// Register registers the search routes. limit guards only the provider-backed route.
func (h *Handler) Register(r gin.IRouter, limit ...gin.HandlerFunc) {
	r.GET("/", h.Home)
	r.GET("/api/search", h.Echo)
	r.GET("/metrics", h.Metrics)
	r.POST("/search", append(limit, h.Search)...)
}
