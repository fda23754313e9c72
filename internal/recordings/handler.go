package recordings

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"callcenter-backend/internal/shared/metrics"
	"callcenter-backend/internal/shared/server/respond"
)

// maxUploadBytes caps call recordings at 25 MB.
const maxUploadBytes = 25 << 20

var allowedExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".m4a":  {},
	".flac": {},
	".ogg":  {},
}

// AnalysisStarter kicks off a background analysis for a stored recording.
type AnalysisStarter interface {
	Start(ctx context.Context, rec Recording) (analysisID string, err error)
}

// Handler serves the upload endpoint.
type Handler struct {
	Svc      *Service
	Analyses AnalysisStarter
}

func NewHandler(svc *Service, analyses AnalysisStarter) *Handler {
	return &Handler{Svc: svc, Analyses: analyses}
}

// RegisterRoutes mounts recording routes on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recordings", h.upload)
	rg.GET("/recordings/:id", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large",
				"Audio file exceeds the 25 MB limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "missing_file",
			"Multipart field 'file' is required", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		respond.Error(c, http.StatusBadRequest, "unsupported_media_type",
			"Audio format must be one of: mp3, wav, m4a, flac, ogg", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unreadable_file",
			"Could not read the uploaded file", nil)
		return
	}
	defer f.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	rec, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, mimeType, f)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "upload_failed",
			"Failed to store the recording", nil)
		return
	}
	c.Set("recordingId", rec.ID)
	metrics.IncUploads()

	analysisID, err := h.Analyses.Start(c.Request.Context(), rec)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "analysis_start_failed",
			"Recording stored but analysis could not be started", gin.H{"recording_id": rec.ID})
		return
	}
	c.Set("analysisId", analysisID)

	respond.JSON(c, http.StatusAccepted, gin.H{
		"recording_id": rec.ID,
		"analysis_id":  analysisID,
		"file_name":    rec.FileName,
		"status":       "uploaded",
		"message":      "File uploaded successfully. Analysis started.",
	})
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Recording not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to load recording", nil)
		return
	}
	respond.JSON(c, http.StatusOK, rec)
}
