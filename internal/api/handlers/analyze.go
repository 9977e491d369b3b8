package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardscout/card-arbitrage/internal/analysis"
	"github.com/cardscout/card-arbitrage/internal/metrics"
	"github.com/cardscout/card-arbitrage/internal/services"
)

type AnalyzeHandler struct {
	analyzer *analysis.Analyzer
	buyee    *services.BuyeeService
}

func NewAnalyzeHandler(analyzer *analysis.Analyzer, buyee *services.BuyeeService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		buyee:    buyee,
	}
}

// AnalyzeRequest carries one listing plus whatever richer evidence the
// caller already has. Detail, image and ai are all optional; the pipeline
// tier reported in the response reflects which of them were present.
type AnalyzeRequest struct {
	Listing analysis.ListingInput  `json:"listing"`
	Detail  *analysis.DetailPage   `json:"detail,omitempty"`
	Image   *analysis.ImageVerdict `json:"image,omitempty"`
	AI      *analysis.AIAnalysis   `json:"ai,omitempty"`

	// FetchDetail asks the server to scrape the listing's own page when
	// the caller did not supply a detail payload. Requires Listing.URL.
	FetchDetail bool `json:"fetch_detail,omitempty"`
}

// AnalyzeListing runs the analysis pipeline over a single listing
func (h *AnalyzeHandler) AnalyzeListing(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if req.Listing.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing title is required"})
		return
	}

	detail := req.Detail
	if detail == nil && req.FetchDetail {
		if req.Listing.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fetch_detail requires a listing url"})
			return
		}
		fetched, err := h.buyee.FetchDetailPage(c.Request.Context(), req.Listing.URL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch detail page: " + err.Error()})
			return
		}
		detail = fetched
	}

	assessment := h.analyzer.Analyze(req.Listing, detail, req.Image, req.AI)

	metrics.ListingsAnalyzedTotal.Inc()
	if assessment.Rejected() {
		metrics.ListingsRejectedTotal.Inc()
	} else {
		metrics.ConfidenceHistogram.Observe(assessment.ConfidenceScore)
	}

	c.JSON(http.StatusOK, assessment)
}
