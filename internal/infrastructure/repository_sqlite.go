package infrastructure

import (
	"errors"
	"fmt"

	"github.com/yourusername/audiofetch-go/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteHistoryRepository implements HistoryRepository using SQLite
type SQLiteHistoryRepository struct {
	db *gorm.DB
}

// NewSQLiteHistoryRepository creates a new SQLite repository
func NewSQLiteHistoryRepository(dbPath string) (*SQLiteHistoryRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.HistoryRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteHistoryRepository{db: db}, nil
}

// Create persists a new record and assigns its ID
func (r *SQLiteHistoryRepository) Create(record *domain.HistoryRecord) error {
	return r.db.Create(record).Error
}

// FindByID finds a record by ID
func (r *SQLiteHistoryRepository) FindByID(id uint) (*domain.HistoryRecord, error) {
	var record domain.HistoryRecord
	err := r.db.First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// List returns up to limit records, newest ID first
func (r *SQLiteHistoryRepository) List(limit int) ([]*domain.HistoryRecord, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}

	var records []*domain.HistoryRecord
	err := r.db.Order("id DESC").Limit(limit).Find(&records).Error
	return records, err
}

// Delete removes a record by ID. Deleting an unknown ID is a no-op.
func (r *SQLiteHistoryRepository) Delete(id uint) error {
	return r.db.Delete(&domain.HistoryRecord{}, "id = ?", id).Error
}

// MarkDownloading moves a record to downloading and resets its progress
// counters, discarding any stale values
func (r *SQLiteHistoryRepository) MarkDownloading(id uint) error {
	return r.db.Model(&domain.HistoryRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":          domain.StatusDownloading,
			"progress":        0.0,
			"total_size":      0,
			"downloaded_size": 0,
		}).Error
}

// UpdateProgress overwrites the progress counters of a record that is still
// downloading. The status guard keeps a late progress write from clobbering
// a terminal status.
func (r *SQLiteHistoryRepository) UpdateProgress(id uint, progress float64, totalSize, downloadedSize int64) error {
	return r.db.Model(&domain.HistoryRecord{}).
		Where("id = ? AND status = ?", id, domain.StatusDownloading).
		Updates(map[string]interface{}{
			"progress":        progress,
			"total_size":      totalSize,
			"downloaded_size": downloadedSize,
		}).Error
}

// MarkCompleted moves a record to completed with progress forced to 100
func (r *SQLiteHistoryRepository) MarkCompleted(id uint) error {
	return r.db.Model(&domain.HistoryRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":   domain.StatusCompleted,
			"progress": 100.0,
		}).Error
}

// MarkFailed moves a record to failed, optionally forcing progress to zero
func (r *SQLiteHistoryRepository) MarkFailed(id uint, resetProgress bool) error {
	updates := map[string]interface{}{
		"status": domain.StatusFailed,
	}
	if resetProgress {
		updates["progress"] = 0.0
	}
	return r.db.Model(&domain.HistoryRecord{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Close closes the database connection
func (r *SQLiteHistoryRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
