package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/audiofetch-go/internal/app"
)

// BookHandler handles book listing requests
type BookHandler struct {
	scanner *app.BookScanner
}

// NewBookHandler creates a new book handler
func NewBookHandler(scanner *app.BookScanner) *BookHandler {
	return &BookHandler{scanner: scanner}
}

// ListBooks handles GET /books
func (h *BookHandler) ListBooks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"books": h.scanner.Scan()})
}
