package service

import (
	"context"
	"errors"
	"testing"

	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedFixture() []entity.SentimentNewsItem {
	return []entity.SentimentNewsItem{
		{ID: "1", Title: "台積電法說會釋利多", Score: 0.9},
		{ID: "2", Title: "聯發科新晶片", StockIDs: entity.StringList{"2454"}, Score: 0.7},
		{ID: "3", Title: "半導體族群走強", Tags: entity.StringList{"台積電", "AI"}, Score: 0.8},
		{ID: "4", Title: "外資調節權值股", StockIDs: entity.StringList{"2330", "2317"}, Score: 0.2},
		{ID: "5", Title: "航運股震盪", Tags: entity.StringList{"台積電ADR"}, Score: 0.5},
		{ID: "6", Title: "鴻海法說", StockIDs: entity.StringList{"2317"}, Score: 0.6},
	}
}

func TestMatchesStock(t *testing.T) {
	tests := []struct {
		name   string
		item   entity.SentimentNewsItem
		symbol string
		stock  string
		want   bool
	}{
		{"title contains name", entity.SentimentNewsItem{Title: "台積電法說會"}, "2330", "台積電", true},
		{"title contains symbol", entity.SentimentNewsItem{Title: "2330 早盤"}, "2330", "台積電", true},
		{"stock id substring", entity.SentimentNewsItem{StockIDs: entity.StringList{"TW2330"}}, "2330", "台積電", true},
		{"tag equals name", entity.SentimentNewsItem{Tags: entity.StringList{"台積電"}}, "2330", "台積電", true},
		{"tag equals symbol", entity.SentimentNewsItem{Tags: entity.StringList{"2330"}}, "2330", "台積電", true},
		{"tag contains name", entity.SentimentNewsItem{Tags: entity.StringList{"台積電ADR"}}, "2330", "台積電", true},
		{"stock id is not matched against name", entity.SentimentNewsItem{StockIDs: entity.StringList{"台積電"}}, "9999", "台積電", false},
		{"unrelated", entity.SentimentNewsItem{Title: "聯發科", StockIDs: entity.StringList{"2454"}}, "2330", "台積電", false},
		{"empty name never matches", entity.SentimentNewsItem{Title: "任何標題", Tags: entity.StringList{""}}, "9999", "", false},
		{"empty symbol never matches", entity.SentimentNewsItem{StockIDs: entity.StringList{"2330"}}, "", "台積電", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesStock(tt.item, tt.symbol, tt.stock))
		})
	}
}

func TestFilterRelated_PreservesOrder(t *testing.T) {
	related := FilterRelated(feedFixture(), "2330", "台積電")

	ids := make([]string, 0, len(related))
	for _, item := range related {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"1", "3", "4", "5"}, ids)
}

func TestFilterRelated_TitleByName(t *testing.T) {
	feed := []entity.SentimentNewsItem{
		{ID: "a", Title: "台積電法說會"},
		{ID: "b", Title: "聯發科新品"},
	}
	related := FilterRelated(feed, "2330", "台積電")
	require.Len(t, related, 1)
	assert.Equal(t, "a", related[0].ID)
}

func TestFilterRelated_NoMatchIsEmptyNotNil(t *testing.T) {
	related := FilterRelated(feedFixture(), "1101", "台泥")
	assert.NotNil(t, related)
	assert.Empty(t, related)
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		label  entity.PolarityLabel
		avg    float64
	}{
		{"positive", []float64{0.8, 0.9}, entity.PolarityPositive, 0.85},
		{"negative", []float64{0.1, 0.2}, entity.PolarityNegative, 0.15},
		{"neutral", []float64{0.5, 0.5}, entity.PolarityNeutral, 0.5},
		{"upper boundary is neutral", []float64{0.6}, entity.PolarityNeutral, 0.6},
		{"lower boundary is neutral", []float64{0.4}, entity.PolarityNeutral, 0.4},
		{"missing score counts as zero", []float64{0, 0.9}, entity.PolarityNeutral, 0.45},
		{"empty", nil, entity.PolarityNeutral, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]entity.SentimentNewsItem, 0, len(tt.scores))
			for _, s := range tt.scores {
				items = append(items, entity.SentimentNewsItem{Score: s})
			}

			got := Aggregate(items)
			assert.Equal(t, tt.label, got.Label)
			assert.InDelta(t, tt.avg, got.Average, 1e-9)
			assert.Equal(t, len(tt.scores), got.Count)
		})
	}
}

func TestSentimentService_Related(t *testing.T) {
	feed := &mockFeed{fetchFunc: func(context.Context) ([]entity.SentimentNewsItem, error) {
		return feedFixture(), nil
	}}
	svc := NewSentimentService(logger.NewNop(), feed)

	related := svc.Related(context.Background(), "2454", "聯發科")
	require.Len(t, related, 1)
	assert.Equal(t, "2", related[0].ID)
}

func TestSentimentService_Related_FeedError(t *testing.T) {
	feed := &mockFeed{fetchFunc: func(context.Context) ([]entity.SentimentNewsItem, error) {
		return nil, errors.New("status 503")
	}}
	svc := NewSentimentService(logger.NewNop(), feed)

	related := svc.Related(context.Background(), "2330", "台積電")
	assert.NotNil(t, related)
	assert.Empty(t, related)
}
