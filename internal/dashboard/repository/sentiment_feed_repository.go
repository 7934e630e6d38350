package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tw-stock-insight/internal/dashboard/config"
	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/cache"
	"tw-stock-insight/pkg/common"
	"tw-stock-insight/pkg/logger"

	"github.com/PuerkitoBio/goquery"
)

type sentimentFeedRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
	cache      cache.Cache
}

// NewSentimentFeedRepository creates a SentimentFeedRepository reading the
// tw_news_stocker daily feed. The feed only changes once a day upstream, so
// the decoded items are cached for sentiment.cache_ttl.
func NewSentimentFeedRepository(cfg *config.Config, log *logger.Logger, c cache.Cache) SentimentFeedRepository {
	return &sentimentFeedRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Dashboard.CallTimeout,
		},
		cache: c,
	}
}

func (r *sentimentFeedRepository) FetchAll(ctx context.Context) ([]entity.SentimentNewsItem, error) {
	return cache.Remember(ctx, r.cache, common.CacheKeySentimentFeed, r.cfg.Sentiment.CacheTTL, r.download)
}

func (r *sentimentFeedRepository) Refresh(ctx context.Context) ([]entity.SentimentNewsItem, error) {
	items, err := r.download(ctx)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		if err := r.cache.Set(ctx, common.CacheKeySentimentFeed, items, r.cfg.Sentiment.CacheTTL); err != nil {
			r.log.WarnContext(ctx, "Failed to cache sentiment feed", logger.ErrorField(err))
		}
	}
	return items, nil
}

func (r *sentimentFeedRepository) download(ctx context.Context) ([]entity.SentimentNewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.Sentiment.FeedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to fetch sentiment feed", logger.ErrorField(err), logger.StringField("url", r.cfg.Sentiment.FeedURL))
		return nil, fmt.Errorf("failed to fetch sentiment feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Received non-OK response from sentiment feed", logger.IntField("status_code", resp.StatusCode), logger.StringField("url", r.cfg.Sentiment.FeedURL))
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("failed to fetch sentiment feed: %s", resp.Status)
	}

	var items []entity.SentimentNewsItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode sentiment feed: %w", err)
	}

	for i := range items {
		items[i].Description = PlainText(items[i].Description)
	}

	r.log.DebugContext(ctx, "Sentiment feed downloaded", logger.IntField("items", len(items)))
	return items, nil
}

// PlainText strips HTML markup, returning the visible text collapsed to single spaces.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
