package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tw-stock-insight/pkg/cache"
	"tw-stock-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>"2330 台積電" - Google News</title>
  <item>
    <title>台積電2月營收年增43% - 鉅亨網</title>
    <link>https://news.example.com/1</link>
    <pubDate>Wed, 05 Mar 2025 08:00:00 GMT</pubDate>
    <description>&lt;a href="https://news.example.com/1"&gt;台積電2月營收年增43%&lt;/a&gt;</description>
  </item>
  <item>
    <title>外資連三買</title>
    <link>https://news.example.com/2</link>
  </item>
  <item>
    <title>third - MoneyDJ</title>
    <link>https://news.example.com/3</link>
  </item>
</channel>
</rss>`

func TestHeadlineRepository_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rss/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "zh-TW", r.URL.Query().Get("hl"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssXML))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Headlines.BaseURL = srv.URL + "/rss"
	cfg.Headlines.MaxItems = 2
	cfg.Headlines.CacheTTL = time.Minute
	repo := NewHeadlineRepository(cfg, logger.NewNop(), cache.NewMemory(time.Minute, time.Minute))

	headlines, err := repo.Search(context.Background(), "2330", "台積電")
	require.NoError(t, err)
	assert.Equal(t, "2330 台積電", gotQuery)

	require.Len(t, headlines, 2)
	assert.Equal(t, "台積電2月營收年增43%", headlines[0].Title)
	assert.Equal(t, "鉅亨網", headlines[0].Source)
	assert.Equal(t, "台積電2月營收年增43%", headlines[0].Summary)
	require.NotNil(t, headlines[0].Published)
	assert.Equal(t, 2025, headlines[0].Published.Year())

	assert.Equal(t, "外資連三買", headlines[1].Title)
	assert.Empty(t, headlines[1].Source)
}

func TestHeadlineRepository_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Headlines.BaseURL = srv.URL
	cfg.Headlines.MaxItems = 5
	repo := NewHeadlineRepository(cfg, logger.NewNop(), nil)

	_, err := repo.Search(context.Background(), "2330", "")
	assert.Error(t, err)
}

func TestSplitSource(t *testing.T) {
	title, source := splitSource("A - B - Yahoo股市")
	assert.Equal(t, "A - B", title)
	assert.Equal(t, "Yahoo股市", source)

	title, source = splitSource("no source")
	assert.Equal(t, "no source", title)
	assert.Empty(t, source)
}
