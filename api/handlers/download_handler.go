package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/audiofetch-go/internal/app"
	"github.com/yourusername/audiofetch-go/internal/domain"
	"go.uber.org/zap"
)

// DownloadHandler handles download and progress requests
type DownloadHandler struct {
	downloadMgr *app.DownloadManager
	repo        domain.HistoryRepository
	logger      *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(downloadMgr *app.DownloadManager, repo domain.HistoryRepository, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		downloadMgr: downloadMgr,
		repo:        repo,
		logger:      logger,
	}
}

// StartDownload handles POST /download
func (h *DownloadHandler) StartDownload(c *gin.Context) {
	var req domain.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.downloadMgr.StartDownload(req)
	if err != nil {
		// Validation failures are client errors and happen before any
		// record is created
		if validationErr := req.Validate(); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		h.logger.Error("Failed to start download", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"download_id": record.ID,
	})
}

// GetProgress handles GET /progress/:id
func (h *DownloadHandler) GetProgress(c *gin.Context) {
	id, err := parseRecordID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "download not found"})
		return
	}

	record, err := h.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "download not found"})
			return
		}
		h.logger.Error("Failed to load progress", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              record.ID,
		"status":          record.Status,
		"progress":        record.Progress,
		"total_size":      record.TotalSize,
		"downloaded_size": record.DownloadedSize,
		"book_title":      record.BookTitle,
		"author":          record.Author,
		"youtube_title":   record.YoutubeTitle,
		"youtube_url":     record.YoutubeURL,
	})
}

func parseRecordID(param string) (uint, error) {
	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
