package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cardscout/card-arbitrage/internal/services"
)

type LeadHandler struct {
	leadService *services.LeadService
}

func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// GetLeads lists stored leads, newest first.
// Query params: valuable=true, min_confidence=0.5, limit=100
func (h *LeadHandler) GetLeads(c *gin.Context) {
	valuableOnly := c.Query("valuable") == "true"

	minConfidence := 0.0
	if raw := c.Query("min_confidence"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_confidence must be a number between 0 and 1"})
			return
		}
		minConfidence = parsed
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	leads, err := h.leadService.ListLeads(valuableOnly, minConfidence, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leads": leads,
		"count": len(leads),
	})
}

// GetStats returns aggregate counts over the lead table
func (h *LeadHandler) GetStats(c *gin.Context) {
	stats, err := h.leadService.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
