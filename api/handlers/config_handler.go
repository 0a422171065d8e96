package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/audiofetch-go/internal/app"
	"go.uber.org/zap"
)

// ConfigHandler exposes the runtime-mutable path settings
type ConfigHandler struct {
	paths  *app.PathConfig
	logger *zap.Logger
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(paths *app.PathConfig, logger *zap.Logger) *ConfigHandler {
	return &ConfigHandler{
		paths:  paths,
		logger: logger,
	}
}

// ConfigRequest represents a path update; omitted fields keep their
// current value
type ConfigRequest struct {
	BooksDir    string `json:"books_dir"`
	DownloadDir string `json:"download_dir"`
}

// GetConfig handles GET /config
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	current := h.paths.Current()
	c.JSON(http.StatusOK, gin.H{
		"books_dir":    current.BooksDir,
		"download_dir": current.DownloadDir,
	})
}

// SetConfig handles POST /config
func (h *ConfigHandler) SetConfig(c *gin.Context) {
	var req ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current := h.paths.Current()
	if req.BooksDir == "" {
		req.BooksDir = current.BooksDir
	}
	if req.DownloadDir == "" {
		req.DownloadDir = current.DownloadDir
	}

	if err := h.paths.Update(req.BooksDir, req.DownloadDir); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := h.paths.Current()
	h.logger.Info("Updated directories",
		zap.String("books_dir", updated.BooksDir),
		zap.String("download_dir", updated.DownloadDir))

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"books_dir":    updated.BooksDir,
		"download_dir": updated.DownloadDir,
	})
}
