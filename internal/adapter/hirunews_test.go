package adapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinhalanews/harvester/internal/article"
)

const hiruFixture = `[
  {
    "seourltitle": "sports/408388/sri-lanka-wins",
    "sinhala_title": "ශ්‍රී ලංකා කණ්ඩායම ජය ගනී",
    "sinhala_story": "<p>තරගයේ සම්පූර්ණ විස්තරය මෙහි ඇත.</p>",
    "sinhala_added_date": "2025-06-26 08:45:42"
  },
  {
    "seourltitle": "sports/408389/second-story",
    "sinhala_title": "දෙවන පුවත",
    "sinhala_story": "දෙවන පුවතේ අන්තර්ගතය",
    "sinhala_added_date": "not a date"
  }
]`

func newHiruTestServer(t *testing.T) (*httptest.Server, *HiruAdapter) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Sports", r.URL.Query().Get("category"))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "1" {
			w.Write([]byte(hiruFixture))
			return
		}
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	a := NewHiruAdapter(server.URL, "https://hirunews.lk/", nil, 0)
	return server, a
}

func TestHiruListCategoryPage(t *testing.T) {
	_, a := newHiruTestServer(t)

	cands := a.ListCategoryPage("sports", 1)
	require.Len(t, cands, 2)

	first := cands[0]
	assert.Equal(t, "sports/408388/sri-lanka-wins", first.NaturalKey)
	assert.Equal(t, "https://hirunews.lk/sports/408388/sri-lanka-wins", first.URL)
	assert.Equal(t, "sports", first.Category)
	assert.False(t, first.PublishedAt.Estimated)

	require.NotNil(t, first.Detail)
	assert.Equal(t, article.ID("sports/408388/sri-lanka-wins"), first.Detail.ID)
	assert.Equal(t, "ශ්‍රී ලංකා කණ්ඩායම ජය ගනී", first.Detail.Headline)
	assert.Equal(t, "තරගයේ සම්පූර්ණ විස්තරය මෙහි ඇත.", first.Detail.Content,
		"story markup must be stripped to plain text")

	// The unparseable date on the second item is an explicit fallback
	assert.True(t, cands[1].PublishedAt.Estimated)
}

func TestHiruEmptyPage(t *testing.T) {
	_, a := newHiruTestServer(t)
	assert.Empty(t, a.ListCategoryPage("sports", 2))
}

func TestHiruUnknownCategory(t *testing.T) {
	_, a := newHiruTestServer(t)
	assert.Empty(t, a.ListCategoryPage("weather", 1))
}

func TestHiruFetchFailureIsSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	a := NewHiruAdapter(server.URL, "https://hirunews.lk/", nil, 0)
	assert.Empty(t, a.ListCategoryPage("sports", 1), "fetch errors degrade to an empty listing")
}

func TestHiruFetchArticleDetail(t *testing.T) {
	_, a := newHiruTestServer(t)

	cands := a.ListCategoryPage("sports", 1)
	require.NotEmpty(t, cands)

	art, ok := a.FetchArticleDetail(cands[0])
	require.True(t, ok)
	assert.True(t, art.IsComplete())

	// A candidate without a prefetched story never yields a
	// half-populated article
	_, ok = a.FetchArticleDetail(ListingCandidate{NaturalKey: "x"})
	assert.False(t, ok)
}
