package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/audiofetch-go/internal/domain"
	"go.uber.org/zap"
)

// BookScanner lists the configured books directory and turns its entries
// into search-ready book items.
type BookScanner struct {
	paths  *PathConfig
	logger *zap.Logger
}

// NewBookScanner creates a new book scanner
func NewBookScanner(paths *PathConfig, logger *zap.Logger) *BookScanner {
	return &BookScanner{
		paths:  paths,
		logger: logger,
	}
}

// Scan lists the current books directory and classifies each entry.
// Subdirectories become folder items; files with a recognized ebook
// extension become file items; everything else is skipped. A missing
// directory is not an error: the scan result is simply empty.
func (s *BookScanner) Scan() []domain.BookItem {
	booksDir := s.paths.Current().BooksDir

	entries, err := os.ReadDir(booksDir)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Books directory does not exist", zap.String("dir", booksDir))
		} else {
			s.logger.Warn("Failed to read books directory", zap.String("dir", booksDir), zap.Error(err))
		}
		return []domain.BookItem{}
	}

	items := make([]domain.BookItem, 0, len(entries))
	for _, entry := range entries {
		fullPath, err := filepath.Abs(filepath.Join(booksDir, entry.Name()))
		if err != nil {
			fullPath = filepath.Join(booksDir, entry.Name())
		}

		if entry.IsDir() {
			author, title := domain.ParseAuthorTitle(entry.Name())
			items = append(items, domain.BookItem{
				ItemName:    entry.Name(),
				FullPath:    fullPath,
				Author:      author,
				Title:       title,
				SearchQuery: domain.BuildSearchQuery(title, author),
				Type:        domain.ItemTypeFolder,
			})
			continue
		}

		ext := filepath.Ext(entry.Name())
		if !domain.IsBookExtension(ext) {
			continue
		}

		stem := strings.TrimSuffix(entry.Name(), ext)
		author, title := domain.ParseAuthorTitle(stem)
		items = append(items, domain.BookItem{
			ItemName:    entry.Name(),
			FullPath:    fullPath,
			Author:      author,
			Title:       title,
			SearchQuery: domain.BuildSearchQuery(title, author),
			Type:        domain.ItemTypeFile,
		})
	}

	return items
}
