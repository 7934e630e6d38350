package service

import (
	"context"
	"strings"

	"tw-stock-insight/internal/dashboard/repository"
	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/logger"
)

// SentimentService selects the community sentiment items related to a stock.
type SentimentService interface {
	// Related never fails; a feed error yields an empty list.
	Related(ctx context.Context, symbol, name string) []entity.SentimentNewsItem
}

type sentimentService struct {
	log  *logger.Logger
	feed repository.SentimentFeedRepository
}

// NewSentimentService creates a new SentimentService.
func NewSentimentService(log *logger.Logger, feed repository.SentimentFeedRepository) SentimentService {
	return &sentimentService{
		log:  log,
		feed: feed,
	}
}

func (s *sentimentService) Related(ctx context.Context, symbol, name string) []entity.SentimentNewsItem {
	items, err := s.feed.FetchAll(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Sentiment feed unavailable, returning no items",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
		return []entity.SentimentNewsItem{}
	}

	related := FilterRelated(items, symbol, name)
	s.log.DebugContext(ctx, "Sentiment items filtered",
		logger.StringField("symbol", symbol),
		logger.IntField("feed_size", len(items)),
		logger.IntField("related", len(related)),
	)
	return related
}

// FilterRelated keeps the items matching symbol or name, preserving feed order.
func FilterRelated(items []entity.SentimentNewsItem, symbol, name string) []entity.SentimentNewsItem {
	related := make([]entity.SentimentNewsItem, 0)
	for _, item := range items {
		if MatchesStock(item, symbol, name) {
			related = append(related, item)
		}
	}
	return related
}

// MatchesStock reports whether the title, any stock id or any tag mentions
// the stock. Matching is case-sensitive substring containment, so short
// numeric symbols can over-match. Empty needles never match.
func MatchesStock(item entity.SentimentNewsItem, symbol, name string) bool {
	if containsNeedle(item.Title, symbol) || containsNeedle(item.Title, name) {
		return true
	}
	// stock ids are only checked against the symbol
	for _, id := range item.StockIDs {
		if containsNeedle(id, symbol) {
			return true
		}
	}
	for _, tag := range item.Tags {
		if containsNeedle(tag, name) || containsNeedle(tag, symbol) {
			return true
		}
	}
	return false
}

func containsNeedle(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}

// Aggregate averages the item scores. A missing score counts as 0 and an
// empty set is neutral.
func Aggregate(items []entity.SentimentNewsItem) entity.Polarity {
	if len(items) == 0 {
		return entity.Polarity{Label: entity.PolarityNeutral}
	}

	var sum float64
	for _, item := range items {
		sum += item.Score
	}
	avg := sum / float64(len(items))
	return entity.Polarity{
		Label:   entity.ClassifyScore(avg),
		Average: avg,
		Count:   len(items),
	}
}
