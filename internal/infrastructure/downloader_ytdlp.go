package infrastructure

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yourusername/audiofetch-go/internal/domain"
	"go.uber.org/zap"
)

// progressTemplate makes yt-dlp print one machine-readable line per progress
// tick on stdout. Unknown fields are rendered as the literal string "NA".
const progressTemplate = "download:%(progress.status)s %(progress.downloaded_bytes)s %(progress.total_bytes)s %(progress.total_bytes_estimate)s"

// YTDLPDownloader implements AudioDownloader by shelling out to yt-dlp.
// The best audio stream is extracted and transcoded to a 192kbps, 44.1kHz,
// 2-channel MP3 with the video stream stripped.
type YTDLPDownloader struct {
	binary string
	logger *zap.Logger
}

// NewYTDLPDownloader creates a new yt-dlp downloader
func NewYTDLPDownloader(binary string, logger *zap.Logger) *YTDLPDownloader {
	return &YTDLPDownloader{
		binary: binary,
		logger: logger,
	}
}

// Download runs yt-dlp against the source URL, streaming progress events to
// the sink from this goroutine. On success the transcoded MP3 sits at
// outputPath; on failure the error carries the tail of yt-dlp's stderr.
func (d *YTDLPDownloader) Download(ctx context.Context, sourceURL, outputPath string, progress domain.ProgressFunc) error {
	if progress == nil {
		progress = func(domain.ProgressEvent) {}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// yt-dlp names the intermediate file by source extension; the mp3
	// postprocessor then lands on the .mp3-suffixed target path.
	outputTemplate := strings.TrimSuffix(outputPath, ".mp3") + ".%(ext)s"

	args := []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "192K",
		"--postprocessor-args", "ffmpeg:-ar 44100 -ac 2 -b:a 192k -vn",
		"--no-playlist",
		"--newline",
		"--progress-template", progressTemplate,
		"-o", outputTemplate,
		sourceURL,
	}

	cmd := exec.CommandContext(ctx, d.binary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open yt-dlp stdout: %w", err)
	}

	d.logger.Debug("Running yt-dlp",
		zap.String("url", sourceURL),
		zap.String("output", outputPath))

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start yt-dlp: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if ev, ok := parseProgressLine(scanner.Text()); ok {
			progress(ev)
		}
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("yt-dlp failed: %w: %s", err, stderrTail(stderr.String()))
	}

	return nil
}

// parseProgressLine parses one progress-template line. Only lines in
// downloading status produce an event; everything else yt-dlp prints on
// stdout is ignored.
func parseProgressLine(line string) (domain.ProgressEvent, bool) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) != 4 || fields[0] != "downloading" {
		return domain.ProgressEvent{}, false
	}

	return domain.ProgressEvent{
		Status:             fields[0],
		DownloadedBytes:    parseByteCount(fields[1]),
		TotalBytes:         parseByteCount(fields[2]),
		TotalBytesEstimate: parseByteCount(fields[3]),
	}, true
}

// parseByteCount converts a template field to bytes. "NA" and malformed
// values mean unknown. yt-dlp reports estimates as floats.
func parseByteCount(field string) int64 {
	if field == "" || field == "NA" {
		return 0
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}

// stderrTail keeps error messages bounded; yt-dlp can be chatty on stderr.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, "; ")
}
