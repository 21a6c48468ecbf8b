package helpers

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// \p{Zs} catches the non-breaking spaces that &nbsp; decodes to.
var whitespaceRe = regexp.MustCompile(`[\s\p{Zs}]+`)

// CollapseWhitespace folds runs of whitespace into single spaces and
// trims the result.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// CleanHTML strips tags from an HTML fragment and returns normalized
// plain text. Entities are decoded and whitespace collapsed; script
// and style bodies are dropped.
func CleanHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		// A fragment goquery cannot parse still has its tags removed
		// crudely so callers never see raw markup.
		return CollapseWhitespace(tagRe.ReplaceAllString(fragment, " "))
	}

	doc.Find("script, style").Remove()
	return CollapseWhitespace(doc.Text())
}

var tagRe = regexp.MustCompile(`<[^>]+>`)
