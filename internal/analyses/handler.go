package analyses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"callcenter-backend/internal/shared/server/respond"
)

// Handler serves analysis status and results.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts analysis routes on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyses/:id", h.getByID)
	rg.GET("/recordings/:id/analysis", h.getByRecording)
}

func (h *Handler) getByID(c *gin.Context) {
	a, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	h.respond(c, a, err)
}

func (h *Handler) getByRecording(c *gin.Context) {
	a, err := h.Svc.GetByRecording(c.Request.Context(), c.Param("id"))
	h.respond(c, a, err)
}

func (h *Handler) respond(c *gin.Context, a Analysis, err error) {
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Analysis not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to load analysis", nil)
		return
	}
	c.Set("analysisId", a.ID)

	if a.Status != StatusComplete {
		respond.JSON(c, http.StatusOK, gin.H{
			"analysis_id":  a.ID,
			"recording_id": a.RecordingID,
			"status":       a.Status,
			"message":      "Analysis is still in progress. Please try again shortly.",
		})
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"analysis_id":             a.ID,
		"recording_id":            a.RecordingID,
		"status":                  a.Status,
		"result":                  a.Result,
		"processing_time_seconds": a.ProcessingTimeSeconds,
		"timestamp":               a.CompletedAt,
	})
}
