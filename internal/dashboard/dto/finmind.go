package dto

// FinMindQuery identifies one FinMind dataset request.
type FinMindQuery struct {
	Dataset   string
	StockID   string
	StartDate string // YYYY-MM-DD
}

// FinMindEnvelope is the common response wrapper of the FinMind v4 data API.
type FinMindEnvelope[T any] struct {
	Msg    string `json:"msg"`
	Status int    `json:"status"`
	Data   []T    `json:"data"`
}

// InstitutionalRow is one investor class for one day (TaiwanStockInstitutionalInvestorsBuySell).
type InstitutionalRow struct {
	Date    string `json:"date"`
	StockID string `json:"stock_id"`
	Buy     int64  `json:"buy"`
	Sell    int64  `json:"sell"`
	Name    string `json:"name"`
}

// MarginRow is one day of margin trading balances (TaiwanStockMarginPurchaseShortSale).
type MarginRow struct {
	Date                       string `json:"date"`
	StockID                    string `json:"stock_id"`
	MarginPurchaseTodayBalance int64  `json:"MarginPurchaseTodayBalance"`
	ShortSaleTodayBalance      int64  `json:"ShortSaleTodayBalance"`
}

// PriceRow is one day of trading (TaiwanStockPrice).
type PriceRow struct {
	Date    string  `json:"date"`
	StockID string  `json:"stock_id"`
	Open    float64 `json:"open"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Close   float64 `json:"close"`
	Volume  int64   `json:"Trading_Volume"`
}
