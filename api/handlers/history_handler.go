package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/audiofetch-go/internal/domain"
	"go.uber.org/zap"
)

// HistoryHandler handles history listing and deletion
type HistoryHandler struct {
	repo   domain.HistoryRepository
	logger *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(repo domain.HistoryRepository, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		repo:   repo,
		logger: logger,
	}
}

// ListHistory handles GET /history. Store errors degrade to an empty list
// so pollers keep a stable response shape.
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	records, err := h.repo.List(domain.DefaultHistoryLimit)
	if err != nil {
		h.logger.Error("Failed to list history", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"items": []*domain.HistoryRecord{},
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": records})
}

// DeleteHistory handles DELETE /history/:id. Deleting an unknown ID
// succeeds with no side effect.
func (h *HistoryHandler) DeleteHistory(c *gin.Context) {
	id, err := parseRecordID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid history id"})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.logger.Error("Failed to delete history record", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
