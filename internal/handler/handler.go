package handler

import (
	"morning-macro/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer          trace.Tracer
	briefingService *service.BriefingService
}

func New(tracer trace.Tracer, briefingService *service.BriefingService) *Handler {
	return &Handler{
		tracer:          tracer,
		briefingService: briefingService,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/indicators", h.GetIndicators)
	r.GET("/api/briefing/preview", h.PreviewBriefing)
	r.POST("/api/briefing/send", h.SendBriefing)
}
