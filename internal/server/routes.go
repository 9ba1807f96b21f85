package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.engine.Group("/api/v1")
	if s.cfg.BearerToken != "" {
		v1.Use(bearerAuthMiddleware(s.cfg.BearerToken))
	}

	stations := v1.Group("/stations")
	{
		stations.GET("", s.handleListStations)
		stations.GET("/:name", s.handleGetStation)
		stations.GET("/:name/stats/:variable/:statistic", s.handleGetStatistic)
	}

	v1.GET("/variables", s.handleListVariables)
	v1.GET("/variables/:key", s.handleGetVariable)

	sessions := v1.Group("/sessions")
	{
		sessions.POST("", s.handleCreateSession)
		sessions.GET("/:id", s.handleGetSession)
		sessions.POST("/:id/messages", s.handlePostMessage)
		sessions.POST("/:id/buttons", s.handlePressButton)
		sessions.DELETE("/:id", s.handleEndSession)
		sessions.GET("/:id/ws", s.handleSessionSocket)
	}
}
