package handler

import (
	"net/http"
	"time"

	"morning-macro/internal/briefing"
	"morning-macro/internal/domain"

	"github.com/gin-gonic/gin"
)

// GetIndicators returns the static tracked-series definitions.
func (h *Handler) GetIndicators(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-indicators")
	defer span.End()

	out := make([]gin.H, 0, len(domain.Indicators))
	for _, def := range domain.Indicators {
		out = append(out, gin.H{
			"series_id":   def.SeriesID,
			"name":        def.Name,
			"unit":        def.Unit,
			"importance":  def.Importance,
			"description": def.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"indicators": out})
}

// PreviewBriefing fetches fresh data and returns the rendered briefing text
// without sending anything.
func (h *Handler) PreviewBriefing(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.preview-briefing")
	defer span.End()

	snapshots := h.briefingService.CollectSnapshots(ctx)
	if len(snapshots) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "no indicator data available"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"collected": len(snapshots),
		"text":      briefing.Render(snapshots, time.Now()),
	})
}

// SendBriefing runs one full unconditional briefing cycle. This is the
// manual-resend path for a lost scheduled delivery.
func (h *Handler) SendBriefing(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.send-briefing")
	defer span.End()

	result, err := h.briefingService.RunBriefing(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if result.Skipped || !result.Delivered {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{
		"collected": result.Collected,
		"failed":    result.Failed,
		"skipped":   result.Skipped,
		"delivered": result.Delivered,
	})
}
