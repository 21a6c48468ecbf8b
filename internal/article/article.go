package article

import "time"

// Article is the canonical persisted record for one news story.
type Article struct {
	ID                   string    `json:"id"`
	Source               string    `json:"source"`
	Category             string    `json:"category"`
	Headline             string    `json:"headline"`
	Content              string    `json:"content"`
	PublishedAt          time.Time `json:"publishedAt"`
	PublishedAtEstimated bool      `json:"publishedAtEstimated"`
	URL                  string    `json:"url"`
}

// Timestamp is a publication time plus whether it was actually parsed
// from the source. Estimated means the source's date text could not be
// read and the harvest time was substituted.
type Timestamp struct {
	Time      time.Time
	Estimated bool
}

// IsZero reports whether the timestamp carries no value at all.
func (t Timestamp) IsZero() bool {
	return t.Time.IsZero()
}

// SetPublishedAt stores a parsed timestamp on the article.
func (a *Article) SetPublishedAt(ts Timestamp) {
	a.PublishedAt = ts.Time
	a.PublishedAtEstimated = ts.Estimated
}

// IsComplete reports whether the article passes the minimum viable
// record gate: both headline and content must be non-empty.
func (a *Article) IsComplete() bool {
	return a != nil && a.Headline != "" && a.Content != ""
}
