package domain

import "errors"

// ErrRecordNotFound is returned by FindByID for unknown record IDs.
var ErrRecordNotFound = errors.New("history record not found")

// DefaultHistoryLimit caps history listings when the caller does not
// supply a limit.
const DefaultHistoryLimit = 200

// HistoryRepository defines the interface for history record persistence.
// It is the only path through which a download job may mutate its record;
// jobs hold record IDs, never shared record pointers.
type HistoryRepository interface {
	// Create persists a new record and assigns its ID
	Create(record *HistoryRecord) error

	// FindByID finds a record by ID, returning ErrRecordNotFound if absent
	FindByID(id uint) (*HistoryRecord, error)

	// List returns up to limit records, newest ID first
	List(limit int) ([]*HistoryRecord, error)

	// Delete removes a record if present; deleting an unknown ID is a no-op
	Delete(id uint) error

	// MarkDownloading moves a record to downloading and resets progress
	// and size counters
	MarkDownloading(id uint) error

	// UpdateProgress overwrites progress and size counters while the record
	// is still downloading; updates after a terminal status are discarded
	UpdateProgress(id uint, progress float64, totalSize, downloadedSize int64) error

	// MarkCompleted moves a record to completed with progress forced to 100
	MarkCompleted(id uint) error

	// MarkFailed moves a record to failed; when resetProgress is true the
	// progress is forced back to zero
	MarkFailed(id uint, resetProgress bool) error
}
