package entity

// RevenuePoint is a revenue record prepared for charting. Percent fields are
// nil when the source string could not be parsed.
type RevenuePoint struct {
	Month            string   `json:"date"`
	Revenue          float64  `json:"revenue"`
	MoM              string   `json:"mom"`
	YoY              string   `json:"yoy"`
	CumulativeYoY    string   `json:"cumulativeRevenueYoy,omitempty"`
	MoMValue         *float64 `json:"momVal"`
	YoYValue         *float64 `json:"monthlyYoyVal"`
	CumulativeYoYVal *float64 `json:"cumulativeVal"`
}

// FinancialCharts holds revenue and margin history sorted oldest-first.
type FinancialCharts struct {
	Revenue []RevenuePoint `json:"revenue"`
	Margins []MarginRecord `json:"margins"`
	// RevenueTrend is the percent change from the first to the last month;
	// nil with fewer than two months or a zero starting value.
	RevenueTrend *float64 `json:"revenueTrend"`
}
