package server

import (
	"context"
	"net/http"

	"github.com/assapir/jobflow/internal/models"
	"github.com/assapir/jobflow/internal/scraper"
	"github.com/gin-gonic/gin"
)

// Searcher is the search pipeline behind the API. *search.Service implements it.
type Searcher interface {
	SearchJobs(ctx context.Context, query, location string) (scraper.SearchResult, error)
	ClearCache()
}

// RunLister reads the search run log
type RunLister interface {
	RecentRuns(ctx context.Context, limit int) ([]models.SearchRun, error)
}

type Server struct {
	searcher Searcher
	runs     RunLister
	limiter  *ClientLimiter
}

// New builds the API. runs may be nil when the run log is disabled.
func New(searcher Searcher, runs RunLister, limiter *ClientLimiter) *Server {
	return &Server{
		searcher: searcher,
		runs:     runs,
		limiter:  limiter,
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Jobflow API is running!",
			"status":  "healthy",
		})
	})

	api := r.Group("/api/linkedin")
	api.GET("/search", s.handleSearch)
	api.POST("/cache/clear", s.handleClearCache)
	api.GET("/runs", s.handleRuns)
	return r
}
