package service

import (
	"context"
	"strings"
	"sync"

	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/common"
	"tw-stock-insight/pkg/logger"
)

// Session owns the single dashboard's state. Every submission gets a new
// generation; an outcome is applied only while its generation is current,
// and starting a search cancels the one before it.
type Session struct {
	log        *logger.Logger
	aggregator AggregatorService

	mu         sync.Mutex
	state      entity.DashboardState
	generation uint64
	cancel     context.CancelFunc
}

// NewSession creates an idle session.
func NewSession(log *logger.Logger, aggregator AggregatorService) *Session {
	return &Session{
		log:        log,
		aggregator: aggregator,
		state:      entity.IdleState(),
	}
}

// Submit runs a search for ticker and returns the state it produced. When a
// newer submission superseded this one, the newer state is returned and this
// search's outcome is dropped.
func (s *Session) Submit(ctx context.Context, ticker string) entity.DashboardState {
	ticker = strings.TrimSpace(ticker)
	searchCtx, gen := s.begin(ctx, ticker)

	dashboard, err := s.aggregator.Aggregate(searchCtx, ticker)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.log.InfoContext(ctx, "Discarding superseded search result",
			logger.StringField("ticker", ticker),
			logger.Field("generation", gen),
			logger.Field("current_generation", s.generation),
		)
		return s.state
	}

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if err != nil {
		s.state = entity.FailedState(gen, ticker, common.GenericFetchErrorMessage)
	} else {
		s.state = entity.ReadyState(gen, ticker, dashboard)
	}
	return s.state
}

func (s *Session) begin(ctx context.Context, ticker string) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	searchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.state = entity.LoadingState(s.generation, ticker)
	return searchCtx, s.generation
}

// Current returns the latest state.
func (s *Session) Current() entity.DashboardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close cancels any in-flight search.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
