package domain

import (
	"fmt"
	"strings"
	"time"
)

// DownloadStatus represents the current status of a download
type DownloadStatus string

const (
	StatusPending     DownloadStatus = "pending"
	StatusDownloading DownloadStatus = "downloading"
	StatusCompleted   DownloadStatus = "completed"
	StatusFailed      DownloadStatus = "failed"
)

// HistoryRecord represents one download's lifecycle, persisted in the
// history store. Exactly one background job writes to a record; any number
// of polling requests may read it concurrently.
type HistoryRecord struct {
	ID             uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	BookTitle      string         `json:"book_title" gorm:"size:500"`
	Author         string         `json:"author" gorm:"size:500"`
	YoutubeTitle   string         `json:"youtube_title" gorm:"size:500"`
	YoutubeURL     string         `json:"youtube_url" gorm:"size:500"`
	DownloadPath   string         `json:"download_path" gorm:"size:1000"`
	AddedAt        time.Time      `json:"added_at"`
	Status         DownloadStatus `json:"status" gorm:"not null;index;default:pending"`
	Progress       float64        `json:"progress" gorm:"default:0"`
	TotalSize      int64          `json:"total_size" gorm:"default:0"`
	DownloadedSize int64          `json:"downloaded_size" gorm:"default:0"`
}

// NewHistoryRecord creates a pending record for a download about to start.
// The store assigns the ID on create.
func NewHistoryRecord(bookTitle, author, youtubeTitle, youtubeURL, downloadPath string) *HistoryRecord {
	return &HistoryRecord{
		BookTitle:    bookTitle,
		Author:       author,
		YoutubeTitle: youtubeTitle,
		YoutubeURL:   youtubeURL,
		DownloadPath: downloadPath,
		AddedAt:      time.Now(),
		Status:       StatusPending,
		Progress:     0.0,
	}
}

// IsTerminal checks if the record is in a terminal state
func (r *HistoryRecord) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// DownloadRequest carries the fields required to start a download.
// Author may be blank; the other fields must not be.
type DownloadRequest struct {
	BookTitle    string `json:"book_title"`
	Author       string `json:"author"`
	YoutubeURL   string `json:"youtube_url"`
	YoutubeTitle string `json:"youtube_title"`
}

// Validate checks the required fields. Whitespace-only counts as blank.
func (req *DownloadRequest) Validate() error {
	if strings.TrimSpace(req.BookTitle) == "" {
		return fmt.Errorf("missing required field: book_title")
	}
	if strings.TrimSpace(req.YoutubeURL) == "" {
		return fmt.Errorf("missing required field: youtube_url")
	}
	if strings.TrimSpace(req.YoutubeTitle) == "" {
		return fmt.Errorf("missing required field: youtube_title")
	}
	return nil
}

// DisplayAuthor returns the author, or "Unknown" if blank.
func (req *DownloadRequest) DisplayAuthor() string {
	if strings.TrimSpace(req.Author) == "" {
		return "Unknown"
	}
	return req.Author
}

const unsafeFilenameChars = `<>:"/\|?*`

// OutputFileName builds the sanitized mp3 filename for a download request.
// Characters invalid on common filesystems are replaced with underscores so
// the name can never escape the download directory or fail a write.
func (req *DownloadRequest) OutputFileName() string {
	name := fmt.Sprintf("%s - %s - %s", req.DisplayAuthor(), req.BookTitle, req.YoutubeTitle)
	sanitized := strings.Map(func(c rune) rune {
		if strings.ContainsRune(unsafeFilenameChars, c) {
			return '_'
		}
		return c
	}, name)
	return sanitized + ".mp3"
}
