package common

const (
	// FinMind dataset names.
	DatasetInstitutionalInvestors = "TaiwanStockInstitutionalInvestorsBuySell"
	DatasetMarginShortSale        = "TaiwanStockMarginPurchaseShortSale"
	DatasetStockPrice             = "TaiwanStockPrice"

	// FinMind institutional investor class labels.
	InvestorForeign         = "Foreign_Investor"
	InvestorInvestmentTrust = "Investment_Trust"
	InvestorDealerSelf      = "Dealer_Self"
	InvestorDealerHedging   = "Dealer_Hedging"

	CacheKeySentimentFeed = "sentiment_feed"
	CacheKeyHeadlines     = "headlines:%s"

	// GenericFetchErrorMessage is shown to the user when the narrative fetch fails.
	GenericFetchErrorMessage = "無法獲取數據。請稍後再試或檢查股票代碼。"
)
