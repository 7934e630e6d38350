package service

import (
	"context"
	"sync"
	"time"

	"tw-stock-insight/internal/dashboard/repository"
	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/logger"
	"tw-stock-insight/pkg/utils"
)

// AggregatorService runs one end-to-end dashboard search.
type AggregatorService interface {
	// Aggregate fails only when the narrative fetch fails.
	Aggregate(ctx context.Context, ticker string) (*entity.Dashboard, error)
}

type aggregatorService struct {
	log           *logger.Logger
	narrative     repository.NarrativeRepository
	institutional InstitutionalService
	sentiment     SentimentService
	now           func() time.Time
}

// NewAggregatorService creates a new AggregatorService.
func NewAggregatorService(
	log *logger.Logger,
	narrative repository.NarrativeRepository,
	institutional InstitutionalService,
	sentiment SentimentService,
) AggregatorService {
	return &aggregatorService{
		log:           log,
		narrative:     narrative,
		institutional: institutional,
		sentiment:     sentiment,
		now:           utils.TimeNowTaipei,
	}
}

func (s *aggregatorService) Aggregate(ctx context.Context, ticker string) (*entity.Dashboard, error) {
	ctx = logger.WithContext(ctx, logger.StringField("ticker", ticker))
	started := time.Now()

	snapshot, err := s.narrative.Analyze(ctx, ticker)
	if err != nil {
		s.log.ErrorContext(ctx, "Narrative fetch failed", logger.ErrorField(err))
		return nil, err
	}

	symbol := snapshot.Symbol
	if symbol == "" {
		symbol = ticker
	}
	name := snapshot.DisplayName()
	if name == "" {
		name = ticker
	}

	var (
		wg      sync.WaitGroup
		series  entity.InstitutionalSeries
		related []entity.SentimentNewsItem
	)
	wg.Add(2)
	utils.GoSafe(s.log, func() {
		defer wg.Done()
		series = s.institutional.Join(ctx, ticker)
	})
	utils.GoSafe(s.log, func() {
		defer wg.Done()
		related = s.sentiment.Related(ctx, symbol, name)
	})
	wg.Wait()

	if related == nil {
		related = []entity.SentimentNewsItem{}
	}

	links := ReferenceLinks(symbol, s.now())
	if len(snapshot.Sources) == 0 {
		links = append(links, FallbackSourceLinks()...)
	}

	s.log.InfoContext(ctx, "Dashboard aggregated",
		logger.IntField("institutional_days", series.Len()),
		logger.IntField("sentiment_items", len(related)),
		logger.Field("duration", time.Since(started).String()),
	)

	return &entity.Dashboard{
		Snapshot:      snapshot,
		Institutional: series,
		Sentiment:     related,
		Polarity:      Aggregate(related),
		Charts:        BuildFinancialCharts(snapshot),
		Links:         links,
	}, nil
}
