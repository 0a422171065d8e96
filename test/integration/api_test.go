package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/audiofetch-go/api"
	"github.com/yourusername/audiofetch-go/internal/app"
	"github.com/yourusername/audiofetch-go/internal/domain"
	"github.com/yourusername/audiofetch-go/internal/infrastructure"
)

// stubProvider returns canned search results without touching the network
type stubProvider struct {
	results []domain.RawSearchResult
}

func (s *stubProvider) Search(ctx context.Context, query string, maxResults int) ([]domain.RawSearchResult, error) {
	return s.results, nil
}

// stubDownloader finishes instantly with one progress tick
type stubDownloader struct {
	err error
}

func (s *stubDownloader) Download(ctx context.Context, sourceURL, outputPath string, progress domain.ProgressFunc) error {
	progress(domain.ProgressEvent{Status: "downloading", DownloadedBytes: 100, TotalBytes: 400})
	return s.err
}

type testEnv struct {
	router      http.Handler
	booksDir    string
	downloadDir string
	repo        *infrastructure.SQLiteHistoryRepository
}

func setupEnv(t *testing.T, downloader domain.AudioDownloader) *testEnv {
	t.Helper()
	log := zap.NewNop()

	booksDir := t.TempDir()
	downloadDir := filepath.Join(t.TempDir(), "downloads")
	paths, err := app.NewPathConfig(booksDir, downloadDir)
	require.NoError(t, err)

	repo, err := infrastructure.NewSQLiteHistoryRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	provider := &stubProvider{
		results: []domain.RawSearchResult{
			{ID: "abc123", Title: "The Hobbit Full Audiobook", Channel: "Audiobooks", Duration: "11:02:33"},
		},
	}

	scanner := app.NewBookScanner(paths, log)
	searchSvc := app.NewSearchService(provider, time.Minute, log)
	downloadMgr := app.NewDownloadManager(repo, downloader, paths, log)

	return &testEnv{
		router:      api.SetupRouter(scanner, searchSvc, downloadMgr, repo, paths, log),
		booksDir:    booksDir,
		downloadDir: downloadDir,
		repo:        repo,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func validDownloadBody() map[string]string {
	return map[string]string{
		"book_title":    "The Hobbit",
		"author":        "Tolkien",
		"youtube_url":   "https://www.youtube.com/watch?v=abc123",
		"youtube_title": "The Hobbit Full Audiobook",
	}
}

// pollProgress polls /progress/:id until the record leaves the pending and
// downloading states.
func (e *testEnv) pollProgress(t *testing.T, id float64) map[string]interface{} {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		w, body := e.do(t, http.MethodGet, fmt.Sprintf("/progress/%d", int(id)), nil)
		require.Equal(t, http.StatusOK, w.Code)

		status := body["status"].(string)
		if status == string(domain.StatusCompleted) || status == string(domain.StatusFailed) {
			return body
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("download never reached a terminal state")
	return nil
}

func TestHealth(t *testing.T) {
	env := setupEnv(t, &stubDownloader{})

	w, body := env.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, body["version"])
}

func TestBooks_ListsLibraryEntries(t *testing.T) {
	env := setupEnv(t, &stubDownloader{})
	require.NoError(t, os.Mkdir(filepath.Join(env.booksDir, "Tolkien - The Hobbit"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.booksDir, "Dune by Frank Herbert.epub"), []byte("x"), 0644))

	w, body := env.do(t, http.MethodGet, "/books", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	books := body["books"].([]interface{})
	assert.Len(t, books, 2)
}

func TestSearch_ReturnsNormalizedResults(t *testing.T) {
	env := setupEnv(t, &stubDownloader{})

	w, body := env.do(t, http.MethodPost, "/search", map[string]interface{}{"query": "the hobbit"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "the hobbit", body["query"])

	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "abc123", first["id"])
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", first["url"])
}

func TestDownload_FullLifecycle(t *testing.T) {
	env := setupEnv(t, &stubDownloader{})

	w, body := env.do(t, http.MethodPost, "/download", validDownloadBody())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])

	id, ok := body["download_id"].(float64)
	require.True(t, ok)

	final := env.pollProgress(t, id)
	assert.Equal(t, string(domain.StatusCompleted), final["status"])
	assert.Equal(t, 100.0, final["progress"])
	assert.Equal(t, 400.0, final["total_size"])
	assert.Equal(t, "The Hobbit", final["book_title"])
}

func TestDownload_FailureEndsFailed(t *testing.T) {
	env := setupEnv(t, &stubDownloader{err: assert.AnError})

	w, body := env.do(t, http.MethodPost, "/download", validDownloadBody())
	require.Equal(t, http.StatusOK, w.Code)

	final := env.pollProgress(t, body["download_id"].(float64))
	assert.Equal(t, string(domain.StatusFailed), final["status"])
}

func TestDownload_MissingFieldsRejected(t *testing.T) {
	env := setupEnv(t, &stubDownloader{})

	body := validDownloadBody()
	body["youtube_url"] = ""
	w, decoded := env.do(t, http.MethodPost, "/download", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decoded["error"])

	w, _ = env.do(t, http.MethodGet, "/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProgress_UnknownIDReturns404(t *testing.T) {
	env := setupEnv(t, &stubDownloader{})

	w, body := env.do(t, http.MethodGet, "/progress/9999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "download not found", body["error"])

	w, _ = env.do(t, http.MethodGet, "/progress/not-a-number", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistory_ListAndDelete(t *testing.T) {
	env := setupEnv(t, &stubDownloader{})

	_, body := env.do(t, http.MethodPost, "/download", validDownloadBody())
	id := body["download_id"].(float64)
	env.pollProgress(t, id)

	w, body := env.do(t, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)

	w, body = env.do(t, http.MethodDelete, fmt.Sprintf("/history/%d", int(id)), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])

	// Deleting again is still a success
	w, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/history/%d", int(id)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = env.do(t, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["items"])
}

func TestHistory_DeleteBadIDReturns400(t *testing.T) {
	env := setupEnv(t, &stubDownloader{})

	w, _ := env.do(t, http.MethodDelete, "/history/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfig_GetAndUpdate(t *testing.T) {
	env := setupEnv(t, &stubDownloader{})

	w, body := env.do(t, http.MethodGet, "/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, env.booksDir, body["books_dir"])
	assert.Equal(t, env.downloadDir, body["download_dir"])

	newBooks := filepath.Join(t.TempDir(), "other-books")
	w, body = env.do(t, http.MethodPost, "/config", map[string]string{"books_dir": newBooks})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, newBooks, body["books_dir"])
	assert.Equal(t, env.downloadDir, body["download_dir"], "omitted fields keep their value")

	w, body = env.do(t, http.MethodGet, "/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, newBooks, body["books_dir"])
}
