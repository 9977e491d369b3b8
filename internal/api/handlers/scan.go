package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardscout/card-arbitrage/internal/services"
)

type ScanHandler struct {
	scanWorker *services.ScanWorker
}

func NewScanHandler(scanWorker *services.ScanWorker) *ScanHandler {
	return &ScanHandler{
		scanWorker: scanWorker,
	}
}

// GetScanStatus returns the background scan worker's progress counters
func (h *ScanHandler) GetScanStatus(c *gin.Context) {
	status := h.scanWorker.GetStatus()
	c.JSON(http.StatusOK, status)
}
