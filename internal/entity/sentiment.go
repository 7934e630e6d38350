package entity

import (
	"encoding/json"
)

// PolarityLabel classifies an average sentiment score.
type PolarityLabel string

const (
	PolarityPositive PolarityLabel = "positive"
	PolarityNegative PolarityLabel = "negative"
	PolarityNeutral  PolarityLabel = "neutral"
)

// Fixed polarity thresholds on the 0..1 score scale.
const (
	PositiveThreshold = 0.6
	NegativeThreshold = 0.4
)

// SentimentNewsItem is one entry of the community sentiment feed.
// Score is near 0 for negative, near 1 for positive and ~0.5 for neutral.
type SentimentNewsItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Link        string     `json:"link"`
	Date        string     `json:"date"`
	Source      string     `json:"source"`
	Score       float64    `json:"sentiment"`
	StockIDs    StringList `json:"stock_id,omitempty"`
	Tags        StringList `json:"tags,omitempty"`
}

// Polarity is the aggregate sentiment of a set of items.
type Polarity struct {
	Label   PolarityLabel `json:"label"`
	Average float64       `json:"average"`
	Count   int           `json:"count"`
}

// ClassifyScore labels a score: above 0.6 is positive, below 0.4 negative.
func ClassifyScore(score float64) PolarityLabel {
	switch {
	case score > PositiveThreshold:
		return PolarityPositive
	case score < NegativeThreshold:
		return PolarityNegative
	default:
		return PolarityNeutral
	}
}

// StringList decodes from either a JSON array of strings or a single string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*l = nil
		} else {
			*l = StringList{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}
