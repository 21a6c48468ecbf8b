package adapter

import (
	"errors"
	"io"
	"time"

	"sinhalanews/harvester/helpers"
	"sinhalanews/harvester/internal/article"
	"sinhalanews/harvester/logger"
	"sinhalanews/harvester/services/cache"
)

// ListingCandidate is one transient entry scanned from a paginated
// listing page, prior to the full-detail fetch.
type ListingCandidate struct {
	NaturalKey  string
	URL         string
	Category    string
	Title       string
	PublishedAt article.Timestamp

	// Detail is set when the listing feed already carries the full
	// story (API sources); FetchArticleDetail returns it as-is.
	Detail *article.Article
}

// SiteAdapter is implemented once per news source and consumed by the
// crawl controller. Both operations fail soft: fetch and parse errors
// are logged by the adapter and surface as an empty list or a missing
// article, never as an error.
type SiteAdapter interface {
	// Source returns the source name used for partitions and records
	Source() string

	// Categories lists the categories the source serves
	Categories() []string

	// ListCategoryPage returns the candidates on one listing page.
	// Pages are 1-based. An empty slice means the page does not exist
	// or could not be read.
	ListCategoryPage(category string, page int) []ListingCandidate

	// FetchArticleDetail resolves a candidate into a full article.
	// ok is false when the mandatory fields (headline, content)
	// cannot be extracted; a half-populated article is never returned.
	FetchArticleDetail(cand ListingCandidate) (*article.Article, bool)
}

// fetcher wraps the HTTP helpers with the per-source block cache:
// once a source answers with a rate-limit status, its key is blocked
// for blockTime and fetches are skipped instead of retried.
type fetcher struct {
	cacheSvc  cache.CacheService
	cacheKey  string
	blockTime time.Duration
	log       *logger.Logger
}

var errBlocked = errors.New("source is blocked after rate limiting")

func (f *fetcher) blocked() bool {
	if f.cacheSvc == nil || f.cacheKey == "" {
		return false
	}
	_, err := f.cacheSvc.Get(f.cacheKey)
	return err == nil
}

func (f *fetcher) block() {
	if f.cacheSvc == nil || f.cacheKey == "" {
		return
	}
	f.cacheSvc.Set(f.cacheKey, []byte("blocked"), f.blockTime)
}

// html fetches a page as a UTF-8 reader, honoring the block cache.
func (f *fetcher) html(url string) (io.Reader, error) {
	if f.blocked() {
		return nil, errBlocked
	}

	body, err := helpers.FetchWithRandomHeaders(url)
	if err != nil {
		if errors.Is(err, helpers.ErrRateLimited) {
			f.block()
		}
		return nil, err
	}
	return body, nil
}

// json fetches and decodes a JSON endpoint, honoring the block cache.
func (f *fetcher) json(url string, v interface{}) error {
	if f.blocked() {
		return errBlocked
	}

	if err := helpers.FetchJSON(url, v); err != nil {
		if errors.Is(err, helpers.ErrRateLimited) {
			f.block()
		}
		return err
	}
	return nil
}
