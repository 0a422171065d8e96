package domain

import "context"

// ProgressEvent is one progress callback from the download tool. TotalBytes
// and TotalBytesEstimate are zero when the tool does not know them.
type ProgressEvent struct {
	Status             string
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
}

// ProgressFunc receives progress events while a download is running.
// The downloader invokes it zero or more times, always from the goroutine
// that called Download.
type ProgressFunc func(ProgressEvent)

// AudioDownloader downloads a video's best audio and transcodes it to MP3
// at the given output path.
type AudioDownloader interface {
	Download(ctx context.Context, sourceURL, outputPath string, progress ProgressFunc) error
}
