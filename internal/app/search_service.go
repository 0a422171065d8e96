package app

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/yourusername/audiofetch-go/internal/domain"
	"go.uber.org/zap"
)

// DefaultMaxResults is used when the caller does not supply a result limit.
const DefaultMaxResults = 10

// SearchService wraps the external search provider and normalizes its
// results. Provider failures never reach the caller: they are logged and
// mapped to an empty result list.
type SearchService struct {
	provider domain.SearchProvider
	cache    *gocache.Cache
	logger   *zap.Logger
}

// NewSearchService creates a new search service. Results are cached per
// query for cacheTTL to avoid hammering the provider with repeated
// identical searches.
func NewSearchService(provider domain.SearchProvider, cacheTTL time.Duration, logger *zap.Logger) *SearchService {
	return &SearchService{
		provider: provider,
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
		logger:   logger,
	}
}

// Search queries the provider and returns normalized results in the
// provider's ranking order. Optional fields absent from the provider
// response are set to the "N/A" sentinel.
func (s *SearchService) Search(ctx context.Context, query string, maxResults int) []domain.SearchResult {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	cacheKey := fmt.Sprintf("%s|%d", query, maxResults)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]domain.SearchResult)
	}

	raw, err := s.provider.Search(ctx, query, maxResults)
	if err != nil {
		s.logger.Error("Search provider failed",
			zap.String("query", query),
			zap.Error(err))
		return []domain.SearchResult{}
	}

	results := make([]domain.SearchResult, 0, len(raw))
	for _, r := range raw {
		results = append(results, domain.SearchResult{
			ID:          r.ID,
			Title:       r.Title,
			Channel:     r.Channel,
			Duration:    orNA(r.Duration),
			PublishTime: orNA(r.PublishTime),
			ViewCount:   orNA(r.ViewCount),
			URL:         fmt.Sprintf("https://www.youtube.com/watch?v=%s", r.ID),
			Thumbnail:   fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", r.ID),
		})
	}

	s.cache.Set(cacheKey, results, gocache.DefaultExpiration)
	return results
}

func orNA(value string) string {
	if value == "" {
		return domain.SentinelNA
	}
	return value
}
