package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/audiofetch-go/internal/app"
	"go.uber.org/zap"
)

// SearchHandler handles YouTube search requests
type SearchHandler struct {
	searchSvc *app.SearchService
	logger    *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchSvc *app.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchSvc: searchSvc,
		logger:    logger,
	}
}

// SearchRequest represents a search request
type SearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults"`
}

// Search handles POST /search
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Searching YouTube", zap.String("query", req.Query))

	results := h.searchSvc.Search(c.Request.Context(), req.Query, req.MaxResults)

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"query":   req.Query,
	})
}
