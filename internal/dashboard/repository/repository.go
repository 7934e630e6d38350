package repository

import (
	"context"

	"tw-stock-insight/internal/dashboard/dto"
	"tw-stock-insight/internal/entity"
)

// NarrativeRepository produces the AI-generated snapshot for a ticker.
// Failures are returned as *NarrativeFetchError.
type NarrativeRepository interface {
	Analyze(ctx context.Context, ticker string) (*entity.StockSnapshot, error)
}

// MarketDataRepository reads the FinMind datasets backing the institutional view.
type MarketDataRepository interface {
	InstitutionalBuySell(ctx context.Context, stockID, startDate string) ([]dto.InstitutionalRow, error)
	MarginShortBalances(ctx context.Context, stockID, startDate string) ([]dto.MarginRow, error)
	DailyPrices(ctx context.Context, stockID, startDate string) ([]dto.PriceRow, error)
}

// SentimentFeedRepository reads the daily news sentiment feed.
type SentimentFeedRepository interface {
	FetchAll(ctx context.Context) ([]entity.SentimentNewsItem, error)
	// Refresh reloads the feed from upstream and replaces the cached copy.
	Refresh(ctx context.Context) ([]entity.SentimentNewsItem, error)
}

// HeadlineRepository searches an RSS news source for a stock.
type HeadlineRepository interface {
	Search(ctx context.Context, symbol, name string) ([]dto.Headline, error)
}
