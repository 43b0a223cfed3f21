package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/pricing"
)

// estimateParams parses the shared query parameters of the estimate
// endpoints: file_kb (required), mode, budget_usd.
func (s *Server) estimateParams(c *gin.Context) (float64, models.AnalysisMode, float64, bool) {
	fileKB, err := strconv.ParseFloat(c.Query("file_kb"), 64)
	if err != nil || fileKB <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_kb must be a positive number"})
		return 0, "", 0, false
	}

	mode := models.AnalysisMode(c.DefaultQuery("mode", s.cfg.DefaultMode))
	if !mode.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mode: " + string(mode)})
		return 0, "", 0, false
	}

	budget := s.cfg.BudgetUSD
	if raw := c.Query("budget_usd"); raw != "" {
		budget, err = strconv.ParseFloat(raw, 64)
		if err != nil || budget < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "budget_usd must be a non-negative number"})
			return 0, "", 0, false
		}
	}

	return fileKB, mode, budget, true
}

// handleCompare returns cost estimates across every known model, cheapest
// first.
func (s *Server) handleCompare(c *gin.Context) {
	fileKB, mode, budget, ok := s.estimateParams(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode":       mode,
		"file_kb":    fileKB,
		"budget_usd": budget,
		"estimates":  pricing.Compare(fileKB, mode, budget),
	})
}

// handleRecommend picks the best model within budget, breaking ties by the
// requested preference axis.
func (s *Server) handleRecommend(c *gin.Context) {
	fileKB, mode, budget, ok := s.estimateParams(c)
	if !ok {
		return
	}

	prefer := pricing.Preference(c.DefaultQuery("prefer", string(pricing.PreferQuality)))
	if prefer != pricing.PreferQuality && prefer != pricing.PreferSpeed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prefer must be 'quality' or 'speed'"})
		return
	}

	provider, model := pricing.Recommend(fileKB, mode, budget, prefer)
	if model == "" {
		c.JSON(http.StatusOK, gin.H{
			"recommendation": nil,
			"message":        "no model fits the given budget",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendation": gin.H{"provider": provider, "model": model},
	})
}
