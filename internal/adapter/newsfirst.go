package adapter

import (
	"fmt"
	"time"

	"sinhalanews/harvester/helpers"
	"sinhalanews/harvester/internal/article"
	"sinhalanews/harvester/logger"
	"sinhalanews/harvester/services/cache"
)

const (
	newsFirstSource   = "news_first"
	newsFirstPageSize = 10
)

// newsFirstCategories maps category names to the API's category IDs.
var newsFirstCategories = map[string]int{
	"local":    81,
	"sports":   83,
	"foreign":  84,
	"business": 85,
}

// newsFirstResponse mirrors the categoryPostPagination payload. The
// listing carries rendered HTML for title and content, so no separate
// detail fetch is needed.
type newsFirstResponse struct {
	Posts []newsFirstPost `json:"postResponseDto"`
}

type newsFirstPost struct {
	Title      rendered `json:"title"`
	ShortTitle string   `json:"short_title"`
	Content    rendered `json:"content"`
	Excerpt    rendered `json:"excerpt"`
	Date       string   `json:"date"`
	PostURL    string   `json:"post_url"`
}

type rendered struct {
	Rendered string `json:"rendered"`
}

// NewsFirstAdapter harvests News First through its JSON API.
type NewsFirstAdapter struct {
	apiBaseURL  string
	siteBaseURL string
	fetch       fetcher
	log         *logger.Logger
}

var _ SiteAdapter = (*NewsFirstAdapter)(nil)

// NewNewsFirstAdapter creates the News First adapter
func NewNewsFirstAdapter(apiBaseURL, siteBaseURL string, cacheSvc cache.CacheService, blockTime time.Duration) *NewsFirstAdapter {
	log := logger.ForAdapter(newsFirstSource)
	return &NewsFirstAdapter{
		apiBaseURL:  apiBaseURL,
		siteBaseURL: siteBaseURL,
		fetch: fetcher{
			cacheSvc:  cacheSvc,
			cacheKey:  newsFirstSource + "_rate_limited",
			blockTime: blockTime,
			log:       log,
		},
		log: log,
	}
}

// Source returns the source name
func (a *NewsFirstAdapter) Source() string {
	return newsFirstSource
}

// Categories lists the categories the API serves
func (a *NewsFirstAdapter) Categories() []string {
	return []string{"local", "sports", "foreign", "business"}
}

// ListCategoryPage fetches one API page of a category
func (a *NewsFirstAdapter) ListCategoryPage(category string, page int) []ListingCandidate {
	categoryID, ok := newsFirstCategories[category]
	if !ok {
		a.log.Warn().Str("category", category).Msg("Unknown category")
		return nil
	}

	endpoint := fmt.Sprintf("%s/post/categoryPostPagination/%d/%d/%d/",
		a.apiBaseURL, categoryID, page, newsFirstPageSize)

	var resp newsFirstResponse
	if err := a.fetch.json(endpoint, &resp); err != nil {
		a.log.Warn().Err(err).Int("page", page).Msg("Listing fetch failed")
		return nil
	}

	candidates := make([]ListingCandidate, 0, len(resp.Posts))
	for _, post := range resp.Posts {
		if post.PostURL == "" {
			continue
		}

		headline := helpers.CleanHTML(post.Title.Rendered)
		if headline == "" {
			headline = helpers.CollapseWhitespace(post.ShortTitle)
		}

		content := helpers.CleanHTML(post.Content.Rendered)
		if content == "" {
			content = helpers.CleanHTML(post.Excerpt.Rendered)
		}

		articleURL := a.siteBaseURL + post.PostURL

		art := &article.Article{
			ID:       article.ID(articleURL),
			Source:   newsFirstSource,
			Category: category,
			Headline: headline,
			Content:  content,
			URL:      articleURL,
		}
		art.SetPublishedAt(article.ParseDate(post.Date))

		candidates = append(candidates, ListingCandidate{
			NaturalKey:  articleURL,
			URL:         articleURL,
			Category:    category,
			Title:       headline,
			PublishedAt: article.Timestamp{Time: art.PublishedAt, Estimated: art.PublishedAtEstimated},
			Detail:      art,
		})
	}
	return candidates
}

// FetchArticleDetail returns the story already carried by the listing
func (a *NewsFirstAdapter) FetchArticleDetail(cand ListingCandidate) (*article.Article, bool) {
	if cand.Detail == nil || !cand.Detail.IsComplete() {
		return nil, false
	}
	return cand.Detail, true
}
