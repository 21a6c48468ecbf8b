package adapter

import (
	"fmt"
	"strings"
	"time"

	"sinhalanews/harvester/config"
	"sinhalanews/harvester/services/cache"
)

// lankadeepaCategoryPaths maps category names to their site paths.
var lankadeepaCategoryPaths = map[string]string{
	"politics":    "politics/13",
	"latest-news": "latest-news/1",
	"news":        "news/101",
	"foreign":     "sports/14",
	"local":       "local/16",
	"business":    "ft",
}

// lankadeepaArticleTokens are the URL path segments of real article
// pages; hrefs without one of these are sidebar or navigation links.
var lankadeepaArticleTokens = []string{
	"latest_news", "news", "politics", "sports", "foreign", "local", "business",
}

// NewAdapters creates all the site adapters based on the configuration
func NewAdapters(cfg *config.Config, cacheSvc cache.CacheService) []SiteAdapter {
	blockTime := time.Duration(cfg.BlockSeconds) * time.Second

	return []SiteAdapter{
		NewHiruAdapter(cfg.HiruAPIURL, cfg.HiruArticleURL, cacheSvc, blockTime),
		NewNewsFirstAdapter(cfg.NewsFirstAPIURL, cfg.NewsFirstSiteURL, cacheSvc, blockTime),
		newLankadeepaAdapter(cfg, cacheSvc, blockTime),
		newITNNewsAdapter(cfg, cacheSvc, blockTime),
	}
}

// newLankadeepaAdapter configures the Lankadeepa HTML adapter.
// The listing paginates by article offset, 30 per page.
func newLankadeepaAdapter(cfg *config.Config, cacheSvc cache.CacheService, blockTime time.Duration) *HTMLAdapter {
	return NewHTMLAdapter(HTMLAdapterConfig{
		Source:     "lankadeepa",
		BaseURL:    cfg.LankadeepaURL,
		Categories: []string{"politics", "latest-news", "news", "foreign", "local", "business"},
		CacheKey:   "lankadeepa_rate_limited",
		BlockTime:  blockTime,
		ListingURL: func(baseURL, category string, page int) string {
			path, ok := lankadeepaCategoryPaths[category]
			if !ok {
				path = category
			}
			offset := (page - 1) * 30
			if offset == 0 {
				return fmt.Sprintf("%s/%s", baseURL, path)
			}
			return fmt.Sprintf("%s/%s/%d", baseURL, path, offset)
		},
		Listing: ListingSelectors{
			Container: "div.flex-wr-sb-s.p-t-20.p-b-15.how-bor2.row",
			Link:      "a[href]",
			Time:      "span.f1-s-4.cl8.hov-cl10.trans-03.timec",
			URLFilter: func(href string) bool {
				if !strings.HasPrefix(href, "https://www.lankadeepa.lk/") {
					return false
				}
				for _, skip := range []string{"page=", "category=", "/you_may_also_like/"} {
					if strings.Contains(href, skip) {
						return false
					}
				}
				for _, token := range lankadeepaArticleTokens {
					if strings.Contains(href, token) {
						return true
					}
				}
				return false
			},
		},
		Detail: DetailSelectors{
			Headline: "h3.f1-l-3, h1, h2, h3",
			Content:  "div.header.inner-content, div.inner-content, div.content",
			Remove:   "script, style",
			ParagraphFilter: func(text string) bool {
				if len(text) <= 30 || strings.HasPrefix(text, "(") {
					return false
				}
				lower := strings.ToLower(text)
				return !strings.Contains(lower, "advertisement") &&
					!strings.Contains(lower, "googletag")
			},
			Time: "div.header.p-b-20 a.f1-s-4",
		},
	}, cacheSvc)
}

// newITNNewsAdapter configures the ITN News HTML adapter.
// The listing paginates with /page/N/ path segments.
func newITNNewsAdapter(cfg *config.Config, cacheSvc cache.CacheService, blockTime time.Duration) *HTMLAdapter {
	return NewHTMLAdapter(HTMLAdapterConfig{
		Source:     "itnnews",
		BaseURL:    cfg.ITNNewsURL,
		Categories: []string{"local", "world", "business", "sports", "entertainment"},
		CacheKey:   "itnnews_rate_limited",
		BlockTime:  blockTime,
		ListingURL: func(baseURL, category string, page int) string {
			if page <= 1 {
				return fmt.Sprintf("%s/%s/", baseURL, category)
			}
			return fmt.Sprintf("%s/%s/page/%d/", baseURL, category, page)
		},
		Listing: ListingSelectors{
			Container: "div.p-wrap",
			Link:      "a.p-url, a[href]",
			Title:     "h3.entry-title",
			Time:      "time",
			TimeAttr:  "datetime",
		},
		Detail: DetailSelectors{
			Headline: "h1.s-title, h1",
			Content:  "div.single-content, div.entry-content, div.post-content, article",
			Remove:   "script, style, nav, aside, footer, header",
			ParagraphFilter: func(text string) bool {
				return len(text) > 20
			},
			Time:     "time",
			TimeAttr: "datetime",
		},
	}, cacheSvc)
}
