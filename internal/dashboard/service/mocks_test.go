package service

import (
	"context"
	"sync"
	"time"

	"tw-stock-insight/internal/dashboard/config"
	"tw-stock-insight/internal/dashboard/dto"
	"tw-stock-insight/internal/entity"
)

type mockMarketData struct {
	institutionalFunc func(ctx context.Context, stockID, startDate string) ([]dto.InstitutionalRow, error)
	marginFunc        func(ctx context.Context, stockID, startDate string) ([]dto.MarginRow, error)
	priceFunc         func(ctx context.Context, stockID, startDate string) ([]dto.PriceRow, error)
}

func (m *mockMarketData) InstitutionalBuySell(ctx context.Context, stockID, startDate string) ([]dto.InstitutionalRow, error) {
	if m.institutionalFunc != nil {
		return m.institutionalFunc(ctx, stockID, startDate)
	}
	return nil, nil
}

func (m *mockMarketData) MarginShortBalances(ctx context.Context, stockID, startDate string) ([]dto.MarginRow, error) {
	if m.marginFunc != nil {
		return m.marginFunc(ctx, stockID, startDate)
	}
	return nil, nil
}

func (m *mockMarketData) DailyPrices(ctx context.Context, stockID, startDate string) ([]dto.PriceRow, error) {
	if m.priceFunc != nil {
		return m.priceFunc(ctx, stockID, startDate)
	}
	return nil, nil
}

type mockNarrative struct {
	analyzeFunc func(ctx context.Context, ticker string) (*entity.StockSnapshot, error)
}

func (m *mockNarrative) Analyze(ctx context.Context, ticker string) (*entity.StockSnapshot, error) {
	return m.analyzeFunc(ctx, ticker)
}

type mockFeed struct {
	mu          sync.Mutex
	fetchFunc   func(ctx context.Context) ([]entity.SentimentNewsItem, error)
	refreshes   int
	refreshFunc func(ctx context.Context) ([]entity.SentimentNewsItem, error)
}

func (m *mockFeed) FetchAll(ctx context.Context) ([]entity.SentimentNewsItem, error) {
	return m.fetchFunc(ctx)
}

func (m *mockFeed) Refresh(ctx context.Context) ([]entity.SentimentNewsItem, error) {
	m.mu.Lock()
	m.refreshes++
	m.mu.Unlock()
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx)
	}
	return nil, nil
}

func (m *mockFeed) refreshCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshes
}

type mockInstitutional struct {
	joinFunc func(ctx context.Context, ticker string) entity.InstitutionalSeries
}

func (m *mockInstitutional) Join(ctx context.Context, ticker string) entity.InstitutionalSeries {
	return m.joinFunc(ctx, ticker)
}

type mockSentiment struct {
	relatedFunc func(ctx context.Context, symbol, name string) []entity.SentimentNewsItem
}

func (m *mockSentiment) Related(ctx context.Context, symbol, name string) []entity.SentimentNewsItem {
	return m.relatedFunc(ctx, symbol, name)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Dashboard.LookbackDays = 20
	cfg.Dashboard.TradingDays = 10
	cfg.Dashboard.CallTimeout = 5 * time.Second
	return cfg
}

type mockAggregator struct {
	aggregateFunc func(ctx context.Context, ticker string) (*entity.Dashboard, error)
}

func (m *mockAggregator) Aggregate(ctx context.Context, ticker string) (*entity.Dashboard, error) {
	return m.aggregateFunc(ctx, ticker)
}
