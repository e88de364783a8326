package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"fraud-detector/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScanJSON classifies an email posted as JSON
func (h *Handler) ScanJSON(c *gin.Context) {
	var req models.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.scanner.Scan(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("Failed to scan email", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "scan failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               res.Record.ID,
		"result":           res.Record.Result,
		"confidence":       res.Record.Confidence,
		"highlighted_text": res.HighlightedText,
	})
}

// GetHistory returns all scans
func (h *Handler) GetHistory(c *gin.Context) {
	scans, err := h.scanner.History(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get scan history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": scans,
		"total": len(scans),
	})
}

// GetScores returns all game snapshots
func (h *Handler) GetScores(c *gin.Context) {
	scores, err := h.game.Scores(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get game scores", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get scores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": scores,
		"total": len(scores),
	})
}

// GetStats returns scan and game counters
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.scanner.Stats(ctx)
	if err != nil {
		h.logger.Error("Failed to get scan stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	stats.TotalGames, err = h.game.SnapshotCount(ctx)
	if err != nil {
		h.logger.Error("Failed to count game scores", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportCSV exports scans to CSV
func (h *Handler) ExportCSV(c *gin.Context) {
	scans, err := h.scanner.History(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to export CSV", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=scans.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"email", "result", "confidence"})
	for _, scan := range scans {
		writer.Write([]string{
			scan.Email,
			string(scan.Result),
			strconv.FormatFloat(scan.Confidence, 'f', 2, 64),
		})
	}
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "fraud-detector",
	})
}
