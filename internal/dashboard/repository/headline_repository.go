package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"tw-stock-insight/internal/dashboard/config"
	"tw-stock-insight/internal/dashboard/dto"
	"tw-stock-insight/pkg/cache"
	"tw-stock-insight/pkg/common"
	"tw-stock-insight/pkg/logger"

	"github.com/mmcdole/gofeed"
)

type headlineRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
	cache      cache.Cache
}

// NewHeadlineRepository creates a HeadlineRepository over the Google News RSS search feed.
func NewHeadlineRepository(cfg *config.Config, log *logger.Logger, c cache.Cache) HeadlineRepository {
	return &headlineRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Dashboard.CallTimeout,
		},
		cache: c,
	}
}

func (r *headlineRepository) Search(ctx context.Context, symbol, name string) ([]dto.Headline, error) {
	query := strings.TrimSpace(symbol + " " + name)
	key := fmt.Sprintf(common.CacheKeyHeadlines, query)
	return cache.Remember(ctx, r.cache, key, r.cfg.Headlines.CacheTTL, func(ctx context.Context) ([]dto.Headline, error) {
		return r.fetch(ctx, query)
	})
}

func (r *headlineRepository) fetch(ctx context.Context, query string) ([]dto.Headline, error) {
	feedURL := fmt.Sprintf("%s/search?q=%s&hl=zh-TW&gl=TW&ceid=TW:zh-Hant", r.cfg.Headlines.BaseURL, url.QueryEscape(query))

	fp := gofeed.NewParser()
	fp.Client = r.httpClient
	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("url", feedURL))
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	headlines := make([]dto.Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(headlines) >= r.cfg.Headlines.MaxItems {
			break
		}
		title, source := splitSource(item.Title)
		headlines = append(headlines, dto.Headline{
			Title:     title,
			Link:      item.Link,
			Source:    source,
			Summary:   PlainText(item.Description),
			Published: item.PublishedParsed,
		})
	}

	r.log.DebugContext(ctx, "RSS headlines fetched", logger.StringField("query", query), logger.IntField("count", len(headlines)))
	return headlines, nil
}

// splitSource separates Google News' "headline - Publisher" titles.
func splitSource(title string) (string, string) {
	idx := strings.LastIndex(title, " - ")
	if idx <= 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
}
