package domain

import "context"

// SentinelNA is substituted for optional search-result fields the provider
// did not return. Clients rely on the literal string, not on null.
const SentinelNA = "N/A"

// SearchResult is a normalized YouTube search hit, regenerated per search
// call and never persisted.
type SearchResult struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Duration    string `json:"duration"`
	PublishTime string `json:"publish_time"`
	ViewCount   string `json:"view_count"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail"`
}

// RawSearchResult is one result as returned by a search provider, before
// normalization. ID, Title and Channel are always set; the rest may be empty.
type RawSearchResult struct {
	ID          string
	Title       string
	Channel     string
	Duration    string
	PublishTime string
	ViewCount   string
}

// SearchProvider performs a search against an external video platform.
type SearchProvider interface {
	// Search returns up to maxResults results in the provider's ranking order.
	Search(ctx context.Context, query string, maxResults int) ([]RawSearchResult, error)
}
