package dto

import "tw-stock-insight/internal/entity"

// SearchRequest starts a dashboard search.
type SearchRequest struct {
	Ticker string `json:"ticker" example:"2330"`
}

// InstitutionalTableRow is a table row with net flows floored to board lots.
type InstitutionalTableRow struct {
	Date                string  `json:"date"`
	ForeignLots         int64   `json:"foreignLots"`
	InvestmentTrustLots int64   `json:"investmentTrustLots"`
	DealerLots          int64   `json:"dealerLots"`
	MarginBalance       int64   `json:"marginBalance"`
	ShortBalance        int64   `json:"shortBalance"`
	Close               float64 `json:"price"`
}

// InstitutionalChartPoint is a chart sample with net flows rounded to board lots.
type InstitutionalChartPoint struct {
	Date    string  `json:"date"`
	Foreign int64   `json:"foreign"`
	Trust   int64   `json:"trust"`
	Dealer  int64   `json:"dealer"`
	Margin  int64   `json:"margin"`
	Short   int64   `json:"short"`
	Close   float64 `json:"price"`
}

// InstitutionalResponse carries the same series in table (newest-first) and
// chart (oldest-first) form.
type InstitutionalResponse struct {
	Days  []entity.InstitutionalDayRecord `json:"days"`
	Table []InstitutionalTableRow         `json:"table"`
	Chart []InstitutionalChartPoint       `json:"chart"`
}

// SentimentResponse is the related sentiment items and their aggregate.
type SentimentResponse struct {
	Items    []entity.SentimentNewsItem `json:"items"`
	Polarity entity.Polarity            `json:"polarity"`
}

// DashboardResponse is the full aggregated view of one ticker.
type DashboardResponse struct {
	Snapshot      *entity.StockSnapshot  `json:"snapshot"`
	IsUp          bool                   `json:"isUp"`
	Institutional InstitutionalResponse  `json:"institutional"`
	Sentiment     SentimentResponse      `json:"sentiment"`
	Charts        entity.FinancialCharts `json:"charts"`
	Links         []entity.ReferenceLink `json:"links"`
}

// StateResponse describes the session. Dashboard is set only when ready and
// Error only when failed.
type StateResponse struct {
	Phase      entity.Phase       `json:"phase"`
	Generation uint64             `json:"generation"`
	Ticker     string             `json:"ticker,omitempty"`
	Dashboard  *DashboardResponse `json:"dashboard,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// DigestResponse reports how many Telegram messages were sent.
type DigestResponse struct {
	Parts int `json:"parts"`
}

// HeadlinesResponse lists RSS headlines for a stock.
type HeadlinesResponse struct {
	Symbol    string     `json:"symbol"`
	Headlines []Headline `json:"headlines"`
}
