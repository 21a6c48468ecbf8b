package helpers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"title":"පුවත"}]`))
	}))
	defer server.Close()

	var items []struct {
		Title string `json:"title"`
	}
	err := FetchJSON(server.URL, &items)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "පුවත", items[0].Title)
}

func TestFetchJSONRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	var out interface{}
	err := FetchJSON(server.URL, &out)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestFetchJSONNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var out interface{}
	err := FetchJSON(server.URL, &out)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

func TestFetchWithRandomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>සිංහල</body></html>"))
	}))
	defer server.Close()

	body, err := FetchWithRandomHeaders(server.URL)
	assert.NoError(t, err)

	data, err := io.ReadAll(body)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "සිංහල")
}

func TestFetchWithRandomHeadersRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := FetchWithRandomHeaders(server.URL)
	assert.ErrorIs(t, err, ErrRateLimited)
}
