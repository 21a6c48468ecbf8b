package adapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsFirstFixture = `{
  "postResponseDto": [
    {
      "title": {"rendered": "ව්&zwj;යාපාරික පුවත <b>විශේෂයි</b>"},
      "content": {"rendered": "<p>පළමු ඡේදය.</p><p>දෙවන ඡේදය.</p>"},
      "excerpt": {"rendered": ""},
      "date": "03-06-2025T8:11 AM",
      "post_url": "2025/06/03/business-story"
    },
    {
      "title": {"rendered": ""},
      "short_title": "කෙටි සිරස්තලය",
      "content": {"rendered": ""},
      "excerpt": {"rendered": "<p>උපුටනයෙන් ලද අන්තර්ගතය</p>"},
      "date": "",
      "post_url": "2025/06/03/excerpt-story"
    }
  ]
}`

func newNewsFirstTestServer(t *testing.T) *NewsFirstAdapter {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/post/categoryPostPagination/85/1/10/":
			w.Write([]byte(newsFirstFixture))
		default:
			w.Write([]byte(`{"postResponseDto": []}`))
		}
	}))
	t.Cleanup(server.Close)

	return NewNewsFirstAdapter(server.URL, "https://sinhala.newsfirst.lk/", nil, 0)
}

func TestNewsFirstListCategoryPage(t *testing.T) {
	a := newNewsFirstTestServer(t)

	cands := a.ListCategoryPage("business", 1)
	require.Len(t, cands, 2)

	first := cands[0]
	assert.Equal(t, "https://sinhala.newsfirst.lk/2025/06/03/business-story", first.URL)
	assert.Equal(t, first.URL, first.NaturalKey, "the canonical URL is the natural key")
	require.NotNil(t, first.Detail)
	assert.Equal(t, "පළමු ඡේදය. දෙවන ඡේදය.", first.Detail.Content)
	assert.NotContains(t, first.Detail.Headline, "<b>")
	assert.False(t, first.PublishedAt.Estimated)

	// Short title and excerpt fill in when rendered fields are empty
	second := cands[1]
	require.NotNil(t, second.Detail)
	assert.Equal(t, "කෙටි සිරස්තලය", second.Detail.Headline)
	assert.Equal(t, "උපුටනයෙන් ලද අන්තර්ගතය", second.Detail.Content)
	assert.True(t, second.PublishedAt.Estimated)
}

func TestNewsFirstEmptyPage(t *testing.T) {
	a := newNewsFirstTestServer(t)
	assert.Empty(t, a.ListCategoryPage("business", 2))
}

func TestNewsFirstUnknownCategory(t *testing.T) {
	a := newNewsFirstTestServer(t)
	assert.Empty(t, a.ListCategoryPage("weather", 1))
}
