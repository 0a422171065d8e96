package app

import (
	"fmt"
	"os"
	"sync/atomic"
)

// Paths is one immutable snapshot of the runtime-mutable directory settings.
type Paths struct {
	BooksDir    string
	DownloadDir string
}

// PathConfig holds the current books and download directories. Updates swap
// the whole snapshot atomically, so scanners and job runners always read a
// consistent pair without taking a lock.
type PathConfig struct {
	current atomic.Pointer[Paths]
}

// NewPathConfig creates a path config with the given initial directories.
// The download directory is created up front so the first download cannot
// fail on a missing target.
func NewPathConfig(booksDir, downloadDir string) (*PathConfig, error) {
	if err := os.MkdirAll(downloadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download directory %s: %w", downloadDir, err)
	}

	pc := &PathConfig{}
	pc.current.Store(&Paths{BooksDir: booksDir, DownloadDir: downloadDir})
	return pc, nil
}

// Current returns the current path snapshot.
func (pc *PathConfig) Current() Paths {
	return *pc.current.Load()
}

// Update validates both directories, creating them if absent, and swaps
// the snapshot. Nothing changes if either directory cannot be made to exist.
func (pc *PathConfig) Update(booksDir, downloadDir string) error {
	if err := ensureDir(booksDir); err != nil {
		return fmt.Errorf("books directory does not exist and could not be created: %s", booksDir)
	}
	if err := ensureDir(downloadDir); err != nil {
		return fmt.Errorf("download directory does not exist and could not be created: %s", downloadDir)
	}

	pc.current.Store(&Paths{BooksDir: booksDir, DownloadDir: downloadDir})
	return nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
