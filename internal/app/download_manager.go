package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yourusername/audiofetch-go/internal/domain"
	"go.uber.org/zap"
)

// DownloadManager creates history records and runs download jobs. Each
// accepted request spawns one background goroutine that outlives the HTTP
// request; there is no queue, no concurrency bound and no cancellation.
// Once started, a job runs to a terminal status. A process shutdown
// abandons in-flight jobs with their records left in downloading state;
// no reconciliation pass exists.
type DownloadManager struct {
	repo       domain.HistoryRepository
	downloader domain.AudioDownloader
	paths      *PathConfig
	logger     *zap.Logger
}

// NewDownloadManager creates a new download manager
func NewDownloadManager(
	repo domain.HistoryRepository,
	downloader domain.AudioDownloader,
	paths *PathConfig,
	logger *zap.Logger,
) *DownloadManager {
	return &DownloadManager{
		repo:       repo,
		downloader: downloader,
		paths:      paths,
		logger:     logger,
	}
}

// StartDownload validates the request, persists a pending history record
// and launches the background job. It returns as soon as the record exists;
// callers poll progress by record ID. Validation failures are reported
// before any record is created.
func (dm *DownloadManager) StartDownload(req domain.DownloadRequest) (*domain.HistoryRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	outputPath := filepath.Join(dm.paths.Current().DownloadDir, req.OutputFileName())

	record := domain.NewHistoryRecord(req.BookTitle, req.Author, req.YoutubeTitle, req.YoutubeURL, outputPath)
	if err := dm.repo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to create history record: %w", err)
	}

	dm.logger.Info("Starting download",
		zap.Uint("id", record.ID),
		zap.String("book_title", req.BookTitle),
		zap.String("author", req.DisplayAuthor()),
		zap.String("url", req.YoutubeURL))

	go dm.run(record.ID, req.YoutubeURL, outputPath)

	return record, nil
}

// run drives one download to a terminal status. Every code path ends in a
// persisted completed or failed status; nothing propagates past the job
// boundary.
func (dm *DownloadManager) run(id uint, sourceURL, outputPath string) {
	defer func() {
		if r := recover(); r != nil {
			dm.logger.Error("Download job panicked",
				zap.Uint("id", id),
				zap.Any("panic", r))
			dm.fail(id, true)
		}
	}()

	// Re-initialize progress state in case of stale values
	if err := dm.repo.MarkDownloading(id); err != nil {
		dm.logger.Error("Failed to mark record downloading", zap.Uint("id", id), zap.Error(err))
		dm.fail(id, true)
		return
	}

	sink := func(ev domain.ProgressEvent) {
		progress, total := progressFromEvent(ev)
		if err := dm.repo.UpdateProgress(id, progress, total, ev.DownloadedBytes); err != nil {
			dm.logger.Error("Failed to update progress", zap.Uint("id", id), zap.Error(err))
		}
	}

	if err := dm.downloader.Download(context.Background(), sourceURL, outputPath, sink); err != nil {
		dm.logger.Error("Download failed",
			zap.Uint("id", id),
			zap.String("url", sourceURL),
			zap.Error(err))
		// Tool failure: keep the last observed progress
		dm.fail(id, false)
		return
	}

	if err := dm.repo.MarkCompleted(id); err != nil {
		dm.logger.Error("Failed to mark record completed", zap.Uint("id", id), zap.Error(err))
		return
	}

	dm.logger.Info("Download completed",
		zap.Uint("id", id),
		zap.String("file", outputPath))
}

func (dm *DownloadManager) fail(id uint, resetProgress bool) {
	if err := dm.repo.MarkFailed(id, resetProgress); err != nil {
		dm.logger.Error("Failed to mark record failed", zap.Uint("id", id), zap.Error(err))
	}
}

// progressFromEvent maps a progress event to a percentage and the total
// size to persist. With neither a known total nor an estimate the
// percentage stays at zero while the downloaded byte count is still
// recorded.
func progressFromEvent(ev domain.ProgressEvent) (progress float64, totalSize int64) {
	switch {
	case ev.TotalBytes > 0:
		return float64(ev.DownloadedBytes) / float64(ev.TotalBytes) * 100, ev.TotalBytes
	case ev.TotalBytesEstimate > 0:
		return float64(ev.DownloadedBytes) / float64(ev.TotalBytesEstimate) * 100, ev.TotalBytesEstimate
	default:
		return 0.0, 0
	}
}
