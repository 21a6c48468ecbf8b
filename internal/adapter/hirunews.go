package adapter

import (
	"fmt"
	"net/url"
	"time"

	"sinhalanews/harvester/helpers"
	"sinhalanews/harvester/internal/article"
	"sinhalanews/harvester/logger"
	"sinhalanews/harvester/services/cache"
)

const hiruSource = "hirunews"

// hiruCategories maps partition category names to the API's category
// parameter.
var hiruCategories = map[string]string{
	"sports":        "Sports",
	"international": "International",
	"entertainment": "Entertainment",
	"business":      "Business",
	"local":         "Local",
}

// hiruItem is one entry of the fetch_news.php response. The listing
// feed carries the full story, so no separate detail fetch is needed.
type hiruItem struct {
	SeoURLTitle  string `json:"seourltitle"`
	SinhalaTitle string `json:"sinhala_title"`
	SinhalaStory string `json:"sinhala_story"`
	AddedDate    string `json:"sinhala_added_date"`
}

// HiruAdapter harvests Hiru News through its JSON API.
type HiruAdapter struct {
	apiURL         string
	articleBaseURL string
	fetch          fetcher
	log            *logger.Logger
}

var _ SiteAdapter = (*HiruAdapter)(nil)

// NewHiruAdapter creates the Hiru News adapter
func NewHiruAdapter(apiURL, articleBaseURL string, cacheSvc cache.CacheService, blockTime time.Duration) *HiruAdapter {
	log := logger.ForAdapter(hiruSource)
	return &HiruAdapter{
		apiURL:         apiURL,
		articleBaseURL: articleBaseURL,
		fetch: fetcher{
			cacheSvc:  cacheSvc,
			cacheKey:  hiruSource + "_rate_limited",
			blockTime: blockTime,
			log:       log,
		},
		log: log,
	}
}

// Source returns the source name
func (a *HiruAdapter) Source() string {
	return hiruSource
}

// Categories lists the categories the API serves
func (a *HiruAdapter) Categories() []string {
	return []string{"sports", "international", "entertainment", "business", "local"}
}

// ListCategoryPage fetches one API page of a category
func (a *HiruAdapter) ListCategoryPage(category string, page int) []ListingCandidate {
	apiCategory, ok := hiruCategories[category]
	if !ok {
		a.log.Warn().Str("category", category).Msg("Unknown category")
		return nil
	}

	endpoint := fmt.Sprintf("%s?page=%d&category=%s", a.apiURL, page, url.QueryEscape(apiCategory))

	var items []hiruItem
	if err := a.fetch.json(endpoint, &items); err != nil {
		a.log.Warn().Err(err).Int("page", page).Msg("Listing fetch failed")
		return nil
	}

	candidates := make([]ListingCandidate, 0, len(items))
	for _, item := range items {
		if item.SeoURLTitle == "" {
			continue
		}

		art := &article.Article{
			ID:       article.ID(item.SeoURLTitle),
			Source:   hiruSource,
			Category: category,
			Headline: helpers.CollapseWhitespace(item.SinhalaTitle),
			Content:  helpers.CleanHTML(item.SinhalaStory),
			URL:      a.articleBaseURL + item.SeoURLTitle,
		}
		art.SetPublishedAt(article.ParseDate(item.AddedDate))

		candidates = append(candidates, ListingCandidate{
			NaturalKey:  item.SeoURLTitle,
			URL:         art.URL,
			Category:    category,
			Title:       art.Headline,
			PublishedAt: article.Timestamp{Time: art.PublishedAt, Estimated: art.PublishedAtEstimated},
			Detail:      art,
		})
	}
	return candidates
}

// FetchArticleDetail returns the story already carried by the listing
func (a *HiruAdapter) FetchArticleDetail(cand ListingCandidate) (*article.Article, bool) {
	if cand.Detail == nil || !cand.Detail.IsComplete() {
		return nil, false
	}
	return cand.Detail, true
}
