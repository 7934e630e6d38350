package service

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"tw-stock-insight/internal/entity"
)

var revenueMonthLayouts = []string{"2006/01", "2006-01", "2006/1", "2006-1", "2006/01/02", "2006-01-02"}

// BuildFinancialCharts prepares the snapshot's revenue and margin history for
// charting. Nothing in the snapshot is modified.
func BuildFinancialCharts(snapshot *entity.StockSnapshot) entity.FinancialCharts {
	charts := entity.FinancialCharts{
		Revenue: []entity.RevenuePoint{},
		Margins: []entity.MarginRecord{},
	}
	if snapshot == nil {
		return charts
	}

	revenue := make([]entity.RevenueRecord, len(snapshot.Revenue))
	copy(revenue, snapshot.Revenue)
	sort.SliceStable(revenue, func(i, j int) bool {
		return revenueMonthLess(revenue[i].Month, revenue[j].Month)
	})
	for _, r := range revenue {
		charts.Revenue = append(charts.Revenue, entity.RevenuePoint{
			Month:            r.Month,
			Revenue:          float64(r.Revenue),
			MoM:              string(r.MoM),
			YoY:              string(r.YoY),
			CumulativeYoY:    string(r.CumulativeYoY),
			MoMValue:         ParsePercent(string(r.MoM)),
			YoYValue:         ParsePercent(string(r.YoY)),
			CumulativeYoYVal: ParsePercent(string(r.CumulativeYoY)),
		})
	}

	charts.Margins = append(charts.Margins, snapshot.Margins...)
	sort.SliceStable(charts.Margins, func(i, j int) bool {
		return charts.Margins[i].Quarter < charts.Margins[j].Quarter
	})

	if n := len(charts.Revenue); n >= 2 {
		first, last := charts.Revenue[0].Revenue, charts.Revenue[n-1].Revenue
		if first != 0 {
			trend := (last - first) / first * 100
			charts.RevenueTrend = &trend
		}
	}
	return charts
}

// ParsePercent reads strings such as "+12.5%" or "-3%". It returns nil for
// blank or unparsable input.
func ParsePercent(s string) *float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimPrefix(s, "+")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func revenueMonthLess(a, b string) bool {
	ta, okA := parseRevenueMonth(a)
	tb, okB := parseRevenueMonth(b)
	if okA && okB {
		return ta.Before(tb)
	}
	return a < b
}

func parseRevenueMonth(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range revenueMonthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
