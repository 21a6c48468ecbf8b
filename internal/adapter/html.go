package adapter

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"sinhalanews/harvester/helpers"
	"sinhalanews/harvester/internal/article"
	"sinhalanews/harvester/logger"
	"sinhalanews/harvester/services/cache"
)

// ListingSelectors locates candidates on a category listing page.
type ListingSelectors struct {
	// Container selects one listing entry
	Container string
	// Link selects the anchor inside a container; its href becomes
	// the candidate URL
	Link string
	// Title selects the headline text inside a container (optional)
	Title string
	// Time selects the publication time inside a container (optional)
	Time string
	// TimeAttr names an attribute holding the time, e.g. "datetime";
	// empty means the element's text
	TimeAttr string
	// URLFilter rejects non-article hrefs (pagination, widgets)
	URLFilter func(href string) bool
}

// DetailSelectors locates the article fields on a detail page.
type DetailSelectors struct {
	// Headline selects the headline, first match wins
	Headline string
	// Content selects the content container, first match wins
	Content string
	// Remove is dropped from the content container before extraction
	Remove string
	// ParagraphFilter rejects boilerplate paragraphs; nil keeps all
	ParagraphFilter func(text string) bool
	// Time selects a publication time on the page (optional)
	Time string
	// TimeAttr names an attribute holding the time (optional)
	TimeAttr string
}

// HTMLAdapterConfig configures a selector-driven adapter for one
// HTML news site.
type HTMLAdapterConfig struct {
	Source     string
	BaseURL    string
	Categories []string
	// ListingURL builds the listing page URL. Pages are 1-based.
	ListingURL func(baseURL, category string, page int) string
	Listing    ListingSelectors
	Detail     DetailSelectors
	CacheKey   string
	BlockTime  time.Duration
}

// HTMLAdapter harvests an HTML news site driven by CSS selectors, one
// configuration per source.
type HTMLAdapter struct {
	cfg   HTMLAdapterConfig
	fetch fetcher
	log   *logger.Logger
}

var _ SiteAdapter = (*HTMLAdapter)(nil)

// NewHTMLAdapter creates a selector-driven adapter
func NewHTMLAdapter(cfg HTMLAdapterConfig, cacheSvc cache.CacheService) *HTMLAdapter {
	log := logger.ForAdapter(cfg.Source)
	return &HTMLAdapter{
		cfg: cfg,
		fetch: fetcher{
			cacheSvc:  cacheSvc,
			cacheKey:  cfg.CacheKey,
			blockTime: cfg.BlockTime,
			log:       log,
		},
		log: log,
	}
}

// Source returns the source name
func (a *HTMLAdapter) Source() string {
	return a.cfg.Source
}

// Categories lists the categories the site serves
func (a *HTMLAdapter) Categories() []string {
	return a.cfg.Categories
}

// ListCategoryPage scrapes one listing page of a category
func (a *HTMLAdapter) ListCategoryPage(category string, page int) []ListingCandidate {
	pageURL := a.cfg.ListingURL(a.cfg.BaseURL, category, page)

	body, err := a.fetch.html(pageURL)
	if err != nil {
		a.log.Warn().Err(err).Int("page", page).Msg("Listing fetch failed")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		a.log.Warn().Err(err).Int("page", page).Msg("Listing parse failed")
		return nil
	}

	var candidates []ListingCandidate
	seen := make(map[string]struct{})

	doc.Find(a.cfg.Listing.Container).Each(func(_ int, s *goquery.Selection) {
		linkSel := s.Find(a.cfg.Listing.Link).First()
		href, ok := linkSel.Attr("href")
		if !ok {
			return
		}
		href = a.resolveURL(strings.TrimSpace(href))
		if href == "" {
			return
		}
		if a.cfg.Listing.URLFilter != nil && !a.cfg.Listing.URLFilter(href) {
			return
		}
		// Listings repeat URLs across widgets; keep the first sighting
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}

		cand := ListingCandidate{
			NaturalKey: href,
			URL:        href,
			Category:   category,
		}
		if a.cfg.Listing.Title != "" {
			cand.Title = helpers.CollapseWhitespace(s.Find(a.cfg.Listing.Title).First().Text())
		}
		if text := a.timeText(s, a.cfg.Listing.Time, a.cfg.Listing.TimeAttr); text != "" {
			cand.PublishedAt = article.ParseDate(text)
		}

		candidates = append(candidates, cand)
	})

	return candidates
}

// FetchArticleDetail scrapes the candidate's detail page
func (a *HTMLAdapter) FetchArticleDetail(cand ListingCandidate) (*article.Article, bool) {
	body, err := a.fetch.html(cand.URL)
	if err != nil {
		a.log.Warn().Err(err).Str("url", cand.URL).Msg("Detail fetch failed")
		return nil, false
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		a.log.Warn().Err(err).Str("url", cand.URL).Msg("Detail parse failed")
		return nil, false
	}

	headline := helpers.CollapseWhitespace(doc.Find(a.cfg.Detail.Headline).First().Text())
	if headline == "" {
		headline = cand.Title
	}

	content := a.extractContent(doc)

	if headline == "" || content == "" {
		a.log.Debug().Str("url", cand.URL).Msg("Missing headline or content, skipping")
		return nil, false
	}

	art := &article.Article{
		ID:       article.ID(cand.NaturalKey),
		Source:   a.cfg.Source,
		Category: cand.Category,
		Headline: headline,
		Content:  content,
		URL:      cand.URL,
	}

	// A timestamp already scanned from the listing beats re-parsing
	// the detail page.
	switch {
	case !cand.PublishedAt.IsZero() && !cand.PublishedAt.Estimated:
		art.SetPublishedAt(cand.PublishedAt)
	default:
		art.SetPublishedAt(article.ParseDate(a.timeText(doc.Selection, a.cfg.Detail.Time, a.cfg.Detail.TimeAttr)))
	}

	return art, true
}

// extractContent joins the filtered paragraphs of the first matching
// content container.
func (a *HTMLAdapter) extractContent(doc *goquery.Document) string {
	container := doc.Find(a.cfg.Detail.Content).First()
	if container.Length() == 0 {
		return ""
	}

	// Work on a clone so removals stay local
	container = container.Clone()
	if a.cfg.Detail.Remove != "" {
		container.Find(a.cfg.Detail.Remove).Remove()
	}

	var parts []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := helpers.CollapseWhitespace(p.Text())
		if text == "" {
			return
		}
		if a.cfg.Detail.ParagraphFilter != nil && !a.cfg.Detail.ParagraphFilter(text) {
			return
		}
		parts = append(parts, text)
	})

	return strings.Join(parts, "\n\n")
}

// timeText pulls a time string from a selection by selector and
// optional attribute.
func (a *HTMLAdapter) timeText(s *goquery.Selection, selector, attr string) string {
	if selector == "" {
		return ""
	}
	sel := s.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	if attr != "" {
		if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return helpers.CollapseWhitespace(sel.Text())
}

// resolveURL makes a listing href absolute against the site base URL.
func (a *HTMLAdapter) resolveURL(href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	base, err := url.Parse(a.cfg.BaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
