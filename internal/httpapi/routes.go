package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) routes() {
	s.engine.Use(gin.Recovery(), RequestLogger(s.logger))

	api := s.engine.Group("/api")
	api.POST("/summarize", s.handleSummarize)
	api.GET("/download/:name", s.handleDownload)
	api.GET("/summaries", s.handleListSummaries)
	api.GET("/summaries/:id", s.handleGetSummary)

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
