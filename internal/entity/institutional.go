package entity

import "math"

// SharesPerLot is the TWSE board lot (張).
const SharesPerLot = 1000

// InstitutionalDayRecord holds one trading day of institutional net flows,
// margin/short balances and the closing price. Net flows are in shares.
type InstitutionalDayRecord struct {
	Date               string  `json:"date"`
	ForeignNet         int64   `json:"foreignBuy"`
	InvestmentTrustNet int64   `json:"investmentTrustBuy"`
	DealerNet          int64   `json:"dealerBuy"`
	MarginBalance      int64   `json:"marginBalance"`
	ShortBalance       int64   `json:"shortBalance"`
	Close              float64 `json:"price"`
}

// InstitutionalSeries is an ordered set of trading days, stored oldest-first.
// Use NewestFirst for tables and OldestFirst for charts.
type InstitutionalSeries struct {
	days []InstitutionalDayRecord
}

// NewInstitutionalSeries wraps records that are already sorted oldest-first.
func NewInstitutionalSeries(oldestFirst []InstitutionalDayRecord) InstitutionalSeries {
	return InstitutionalSeries{days: oldestFirst}
}

func (s InstitutionalSeries) Len() int {
	return len(s.days)
}

func (s InstitutionalSeries) IsEmpty() bool {
	return len(s.days) == 0
}

// OldestFirst returns a copy of the records in ascending date order.
func (s InstitutionalSeries) OldestFirst() []InstitutionalDayRecord {
	out := make([]InstitutionalDayRecord, len(s.days))
	copy(out, s.days)
	return out
}

// NewestFirst returns a copy of the records in descending date order.
func (s InstitutionalSeries) NewestFirst() []InstitutionalDayRecord {
	out := make([]InstitutionalDayRecord, len(s.days))
	for i, d := range s.days {
		out[len(s.days)-1-i] = d
	}
	return out
}

// ToLots converts shares to whole board lots, rounding toward negative infinity.
func ToLots(shares int64) int64 {
	lots := shares / SharesPerLot
	if shares%SharesPerLot != 0 && shares < 0 {
		lots--
	}
	return lots
}

// RoundLots converts shares to board lots, rounding half up.
func RoundLots(shares int64) int64 {
	return int64(math.Floor(float64(shares)/SharesPerLot + 0.5))
}
