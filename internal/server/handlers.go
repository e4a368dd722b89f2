package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/assapir/jobflow/internal/scraper"
	"github.com/assapir/jobflow/internal/search"
	"github.com/gin-gonic/gin"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

type searchQuery struct {
	Query    string `form:"q"`
	Location string `form:"location"`
}

func (s *Server) handleSearch(c *gin.Context) {
	ip := c.ClientIP()
	if wait := s.limiter.Wait(ip); wait > 0 {
		tooManyRequests(c, wait)
		return
	}

	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": []string{err.Error()},
		})
		return
	}
	if strings.TrimSpace(q.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": []string{"q: Search query is required"},
		})
		return
	}

	//Only valid requests use up the client's slot. A concurrent request from the
	//same client may have taken it since Wait.
	if !s.limiter.Take(ip) {
		tooManyRequests(c, s.limiter.Wait(ip))
		return
	}

	result, err := s.searcher.SearchJobs(c.Request.Context(), q.Query, q.Location)
	if err != nil {
		log.Printf("❌ LinkedIn search error: %v", err)
		status, message := statusFor(err)
		c.JSON(status, gin.H{
			"error":   message,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"jobs":         result.Jobs,
		"totalResults": result.TotalResults,
	})
}

func tooManyRequests(c *gin.Context, wait time.Duration) {
	secs := max(retryAfterSeconds(wait), 1)
	c.Header("Retry-After", strconv.Itoa(secs))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":      "Too many requests",
		"message":    fmt.Sprintf("Please wait %d seconds before searching again", secs),
		"retryAfter": secs,
	})
}

func (s *Server) handleClearCache(c *gin.Context) {
	s.searcher.ClearCache()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cache cleared",
	})
}

func (s *Server) handleRuns(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Run log disabled",
			"message": "DATABASE_URL is not configured",
		})
		return
	}

	limit := defaultRunsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request",
				"details": []string{"limit: must be a positive integer"},
			})
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := s.runs.RecentRuns(c.Request.Context(), limit)
	if err != nil {
		log.Printf("❌ Failed to list runs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list runs",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"runs":    runs,
	})
}

// statusFor maps the search error taxonomy onto HTTP
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, scraper.ErrBlocked):
		return http.StatusServiceUnavailable, "LinkedIn blocked the search"
	case errors.Is(err, scraper.ErrListingsNotFound):
		return http.StatusBadGateway, "Job listings not found"
	case scraper.IsNavigationError(err):
		return http.StatusBadGateway, "Could not load LinkedIn"
	default:
		return http.StatusInternalServerError, "Search failed"
	}
}
