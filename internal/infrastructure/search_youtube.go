package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/audiofetch-go/internal/domain"
	"go.uber.org/zap"
	"resty.dev/v3"
)

const (
	defaultYouTubeBaseURL = "https://www.youtube.com"
	searchUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	initialDataMarker     = "var ytInitialData = "
)

// YouTubeSearchClient implements SearchProvider by fetching the YouTube
// results page and reading the embedded ytInitialData payload. No API key
// is required.
type YouTubeSearchClient struct {
	client  *resty.Client
	baseURL string
	logger  *zap.Logger
}

// NewYouTubeSearchClient creates a new YouTube search client
func NewYouTubeSearchClient(logger *zap.Logger) *YouTubeSearchClient {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", searchUserAgent).
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	return &YouTubeSearchClient{
		client:  client,
		baseURL: defaultYouTubeBaseURL,
		logger:  logger,
	}
}

// Close releases the underlying HTTP client
func (c *YouTubeSearchClient) Close() error {
	return c.client.Close()
}

// Search fetches the results page for query and returns up to maxResults
// video entries in page order.
func (c *YouTubeSearchClient) Search(ctx context.Context, query string, maxResults int) ([]domain.RawSearchResult, error) {
	res, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("search_query", query).
		Get(c.baseURL + "/results")
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("search request returned status %d", res.StatusCode())
	}

	results, err := parseSearchPage(res.String(), maxResults)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("YouTube search done",
		zap.String("query", query),
		zap.Int("results", len(results)))

	return results, nil
}

// parseSearchPage extracts video entries from the ytInitialData JSON blob
// embedded in the results page.
func parseSearchPage(page string, maxResults int) ([]domain.RawSearchResult, error) {
	idx := strings.Index(page, initialDataMarker)
	if idx < 0 {
		return nil, fmt.Errorf("ytInitialData not found in results page")
	}

	blob := page[idx+len(initialDataMarker):]
	end := strings.Index(blob, ";</script>")
	if end < 0 {
		return nil, fmt.Errorf("ytInitialData is not terminated")
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(blob[:end]), &data); err != nil {
		return nil, fmt.Errorf("failed to decode ytInitialData: %w", err)
	}

	sections := digSlice(data,
		"contents", "twoColumnSearchResultsRenderer", "primaryContents",
		"sectionListRenderer", "contents")

	var results []domain.RawSearchResult
	for _, section := range sections {
		items := digSlice(section, "itemSectionRenderer", "contents")
		for _, item := range items {
			video, ok := dig(item, "videoRenderer").(map[string]interface{})
			if !ok {
				continue
			}

			id, _ := video["videoId"].(string)
			if id == "" {
				continue
			}

			results = append(results, domain.RawSearchResult{
				ID:          id,
				Title:       textOf(video["title"]),
				Channel:     textOf(video["ownerText"]),
				Duration:    textOf(video["lengthText"]),
				PublishTime: textOf(video["publishedTimeText"]),
				ViewCount:   textOf(video["viewCountText"]),
			})
			if len(results) >= maxResults {
				return results, nil
			}
		}
	}

	return results, nil
}

// dig walks nested maps by key, returning nil when any hop is missing.
func dig(value interface{}, keys ...string) interface{} {
	for _, key := range keys {
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil
		}
		value = m[key]
	}
	return value
}

func digSlice(value interface{}, keys ...string) []interface{} {
	s, _ := dig(value, keys...).([]interface{})
	return s
}

// textOf extracts display text from YouTube's two text shapes:
// {"simpleText": "..."} and {"runs": [{"text": "..."}, ...]}.
func textOf(value interface{}) string {
	if s, ok := dig(value, "simpleText").(string); ok {
		return s
	}

	var sb strings.Builder
	for _, run := range digSlice(value, "runs") {
		if s, ok := dig(run, "text").(string); ok {
			sb.WriteString(s)
		}
	}
	return sb.String()
}
