package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tw-stock-insight/internal/dashboard/dto"
	"tw-stock-insight/internal/dashboard/repository"
	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/common"
	"tw-stock-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_StartsIdle(t *testing.T) {
	s := NewSession(logger.NewNop(), &mockAggregator{})
	state := s.Current()
	assert.Equal(t, entity.PhaseIdle, state.Phase())
	assert.Empty(t, state.Ticker())
	_, ok := state.Dashboard()
	assert.False(t, ok)
}

func TestSession_ReadyAndFailed(t *testing.T) {
	agg := &mockAggregator{aggregateFunc: func(_ context.Context, ticker string) (*entity.Dashboard, error) {
		if ticker == "0000" {
			return nil, &repository.NarrativeFetchError{Kind: repository.ErrMalformedJSON, Raw: "{oops}"}
		}
		return &entity.Dashboard{Snapshot: &entity.StockSnapshot{Symbol: ticker}}, nil
	}}
	s := NewSession(logger.NewNop(), agg)

	ready := s.Submit(context.Background(), " 2330 ")
	assert.Equal(t, entity.PhaseReady, ready.Phase())
	assert.Equal(t, "2330", ready.Ticker())
	assert.Equal(t, uint64(1), ready.Generation())
	d, ok := ready.Dashboard()
	require.True(t, ok)
	assert.Equal(t, "2330", d.Snapshot.Symbol)

	failed := s.Submit(context.Background(), "0000")
	assert.Equal(t, entity.PhaseFailed, failed.Phase())
	msg, ok := failed.Message()
	require.True(t, ok)
	assert.Equal(t, common.GenericFetchErrorMessage, msg)
	_, ok = failed.Dashboard()
	assert.False(t, ok, "previous snapshot is discarded")
	assert.Equal(t, failed, s.Current())
}

func TestSession_LoadingWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	agg := &mockAggregator{aggregateFunc: func(context.Context, string) (*entity.Dashboard, error) {
		close(entered)
		<-release
		return &entity.Dashboard{}, nil
	}}
	s := NewSession(logger.NewNop(), agg)

	done := make(chan entity.DashboardState)
	go func() { done <- s.Submit(context.Background(), "2330") }()

	<-entered
	loading := s.Current()
	assert.Equal(t, entity.PhaseLoading, loading.Phase())
	assert.Equal(t, "2330", loading.Ticker())

	close(release)
	assert.Equal(t, entity.PhaseReady, (<-done).Phase())
}

func TestSession_StaleResultIsDiscarded(t *testing.T) {
	slowEntered := make(chan struct{})
	releaseSlow := make(chan struct{})
	agg := &mockAggregator{aggregateFunc: func(ctx context.Context, ticker string) (*entity.Dashboard, error) {
		if ticker == "2330" {
			close(slowEntered)
			// Ignores cancellation and completes successfully afterwards.
			<-releaseSlow
			return &entity.Dashboard{Snapshot: &entity.StockSnapshot{Symbol: "2330"}}, nil
		}
		return &entity.Dashboard{Snapshot: &entity.StockSnapshot{Symbol: ticker}}, nil
	}}
	s := NewSession(logger.NewNop(), agg)

	slowDone := make(chan entity.DashboardState)
	go func() { slowDone <- s.Submit(context.Background(), "2330") }()
	<-slowEntered

	fast := s.Submit(context.Background(), "2454")
	require.Equal(t, entity.PhaseReady, fast.Phase())
	assert.Equal(t, uint64(2), fast.Generation())

	close(releaseSlow)
	slow := <-slowDone

	assert.Equal(t, "2454", slow.Ticker(), "superseded search reports the newer state")
	current := s.Current()
	assert.Equal(t, "2454", current.Ticker())
	d, ok := current.Dashboard()
	require.True(t, ok)
	assert.Equal(t, "2454", d.Snapshot.Symbol)
}

func TestSession_NewSearchCancelsPrevious(t *testing.T) {
	firstEntered := make(chan struct{})
	firstCtxErr := make(chan error, 1)
	agg := &mockAggregator{aggregateFunc: func(ctx context.Context, ticker string) (*entity.Dashboard, error) {
		if ticker == "2330" {
			close(firstEntered)
			select {
			case <-ctx.Done():
				firstCtxErr <- ctx.Err()
				return nil, ctx.Err()
			case <-time.After(2 * time.Second):
				firstCtxErr <- nil
				return &entity.Dashboard{}, nil
			}
		}
		return &entity.Dashboard{}, nil
	}}
	s := NewSession(logger.NewNop(), agg)

	firstDone := make(chan entity.DashboardState)
	go func() { firstDone <- s.Submit(context.Background(), "2330") }()
	<-firstEntered

	second := s.Submit(context.Background(), "2317")
	assert.Equal(t, entity.PhaseReady, second.Phase())

	assert.ErrorIs(t, <-firstCtxErr, context.Canceled)
	first := <-firstDone
	assert.NotEqual(t, entity.PhaseFailed, first.Phase(), "cancelled search never surfaces as failed")
	assert.Equal(t, "2317", first.Ticker())
	assert.Equal(t, "2317", s.Current().Ticker())
}

func TestSession_NarrativeOkSidesFailIsReady(t *testing.T) {
	transport := errors.New("dial tcp: i/o timeout")
	marketData := &mockMarketData{
		institutionalFunc: func(context.Context, string, string) ([]dto.InstitutionalRow, error) { return nil, nil },
		marginFunc:        func(context.Context, string, string) ([]dto.MarginRow, error) { return nil, nil },
		priceFunc:         func(context.Context, string, string) ([]dto.PriceRow, error) { return nil, transport },
	}
	feed := &mockFeed{fetchFunc: func(context.Context) ([]entity.SentimentNewsItem, error) { return nil, transport }}
	narrative := &mockNarrative{analyzeFunc: func(context.Context, string) (*entity.StockSnapshot, error) {
		return &entity.StockSnapshot{Symbol: "2330", Name: "台積電", Price: "1,050"}, nil
	}}

	log := logger.NewNop()
	aggregator := NewAggregatorService(log, narrative,
		NewInstitutionalService(testConfig(), log, marketData),
		NewSentimentService(log, feed),
	)
	state := NewSession(log, aggregator).Submit(context.Background(), "2330")

	require.Equal(t, entity.PhaseReady, state.Phase())
	d, ok := state.Dashboard()
	require.True(t, ok)
	assert.Equal(t, "台積電", d.Snapshot.Name)
	assert.True(t, d.Institutional.IsEmpty())
	assert.Empty(t, d.Sentiment)
}
