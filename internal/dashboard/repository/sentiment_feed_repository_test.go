package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/cache"
	"tw-stock-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedJSON = `[
  {"id":"a1","title":"台積電法說會","description":"<p>營收 <b>創新高</b></p>","link":"https://example.com/a1","date":"2025-03-05","source":"cnyes","sentiment":0.82,"stock_id":["2330"],"tags":["半導體"]},
  {"id":"a2","title":"聯發科新品","description":"天璣晶片","link":"https://example.com/a2","date":"2025-03-05","source":"udn","sentiment":0.55,"stock_id":"2454"}
]`

func newFeedTestRepo(t *testing.T, handler http.HandlerFunc) (SentimentFeedRepository, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.Sentiment.FeedURL = srv.URL + "/today.json"
	cfg.Sentiment.CacheTTL = time.Minute
	return NewSentimentFeedRepository(cfg, logger.NewNop(), cache.NewMemory(time.Minute, time.Minute)), &hits
}

func TestSentimentFeedRepository_FetchAll(t *testing.T) {
	repo, hits := newFeedTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedJSON))
	})

	items, err := repo.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "營收 創新高", items[0].Description)
	assert.Equal(t, entity.StringList{"2330"}, items[0].StockIDs)
	assert.Equal(t, entity.StringList{"2454"}, items[1].StockIDs)
	assert.InDelta(t, 0.82, items[0].Score, 1e-9)

	_, err = repo.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits), "second call is served from cache")

	_, err = repo.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(hits))
}

func TestSentimentFeedRepository_Errors(t *testing.T) {
	repo, _ := newFeedTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := repo.FetchAll(context.Background())
	assert.Error(t, err)

	repo, _ = newFeedTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	})
	_, err = repo.Refresh(context.Background())
	assert.Error(t, err)
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "plain", PlainText("  plain "))
	assert.Equal(t, "a b & c", PlainText("<div>a <i>b</i> &amp; c</div>"))
	assert.Equal(t, "", PlainText(""))
}
