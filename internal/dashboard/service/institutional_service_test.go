package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tw-stock-insight/internal/dashboard/dto"
	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceRows(n int) []dto.PriceRow {
	rows := make([]dto.PriceRow, 0, n)
	start := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		rows = append(rows, dto.PriceRow{
			Date:  start.AddDate(0, 0, i).Format("2006-01-02"),
			Close: 1000 + float64(i),
		})
	}
	return rows
}

func TestJoinInstitutional_WindowAndOrdering(t *testing.T) {
	tests := []struct {
		name   string
		prices []dto.PriceRow
		want   int
	}{
		{"fewer than window", priceRows(4), 4},
		{"exactly window", priceRows(10), 10},
		{"more than window", priceRows(14), 10},
		{"duplicate dates counted once", append(priceRows(6), priceRows(6)...), 6},
		{"no prices", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := JoinInstitutional(nil, nil, tt.prices, 10)
			require.Equal(t, tt.want, series.Len())

			newest := series.NewestFirst()
			for i := 1; i < len(newest); i++ {
				assert.Greater(t, newest[i-1].Date, newest[i].Date, "strictly descending")
			}
		})
	}
}

func TestJoinInstitutional_KeepsMostRecentDates(t *testing.T) {
	prices := priceRows(14)
	// Unsorted input.
	prices[0], prices[13] = prices[13], prices[0]

	series := JoinInstitutional(nil, nil, prices, 10)
	newest := series.NewestFirst()
	require.Len(t, newest, 10)
	assert.Equal(t, "2025-02-16", newest[0].Date)
	assert.Equal(t, "2025-02-07", newest[9].Date)
	assert.Equal(t, 1013.0, newest[0].Close)
}

func TestJoinInstitutional_NetFlows(t *testing.T) {
	prices := []dto.PriceRow{{Date: "2025-03-04", Close: 1040}, {Date: "2025-03-05", Close: 1050}}
	inst := []dto.InstitutionalRow{
		{Date: "2025-03-05", Name: "Foreign_Investor", Buy: 30_000_000, Sell: 12_500_000},
		{Date: "2025-03-05", Name: "Foreign_Dealer_Self", Buy: 9, Sell: 0},
		{Date: "2025-03-05", Name: "Investment_Trust", Buy: 100_000, Sell: 400_000},
		{Date: "2025-03-05", Name: "Dealer_Self", Buy: 50_000, Sell: 20_000},
		{Date: "2025-03-05", Name: "Dealer_Hedging", Buy: 10_000, Sell: 70_000},
		// Only self-trading reported for this date.
		{Date: "2025-03-04", Name: "Dealer_Self", Buy: 8_000, Sell: 1_000},
		// Not a price date, ignored.
		{Date: "2025-03-01", Name: "Foreign_Investor", Buy: 1, Sell: 0},
	}
	margins := []dto.MarginRow{
		{Date: "2025-03-05", MarginPurchaseTodayBalance: 25_000, ShortSaleTodayBalance: 300},
	}

	newest := JoinInstitutional(inst, margins, prices, 10).NewestFirst()
	require.Len(t, newest, 2)

	assert.Equal(t, entity.InstitutionalDayRecord{
		Date:               "2025-03-05",
		ForeignNet:         17_500_000,
		InvestmentTrustNet: -300_000,
		DealerNet:          (50_000 - 20_000) + (10_000 - 70_000),
		MarginBalance:      25_000,
		ShortBalance:       300,
		Close:              1050,
	}, newest[0])

	assert.Equal(t, entity.InstitutionalDayRecord{
		Date:      "2025-03-04",
		DealerNet: 7_000,
		Close:     1040,
	}, newest[1])
}

func TestInstitutionalService_Join(t *testing.T) {
	var gotStart []string
	md := &mockMarketData{
		institutionalFunc: func(_ context.Context, stockID, startDate string) ([]dto.InstitutionalRow, error) {
			assert.Equal(t, "2330", stockID)
			gotStart = append(gotStart, startDate)
			return []dto.InstitutionalRow{{Date: "2025-02-03", Name: "Foreign_Investor", Buy: 5000, Sell: 1000}}, nil
		},
		marginFunc: func(_ context.Context, _, _ string) ([]dto.MarginRow, error) {
			return []dto.MarginRow{{Date: "2025-02-03", MarginPurchaseTodayBalance: 10}}, nil
		},
		priceFunc: func(_ context.Context, _, _ string) ([]dto.PriceRow, error) {
			return priceRows(12), nil
		},
	}
	svc := NewInstitutionalService(testConfig(), logger.NewNop(), md).(*institutionalService)
	svc.now = func() time.Time { return time.Date(2025, 3, 5, 1, 0, 0, 0, time.UTC) }

	series := svc.Join(context.Background(), "2330")
	assert.Equal(t, []string{"2025-02-13"}, gotStart)
	assert.Equal(t, 10, series.Len())
}

func TestInstitutionalService_Join_FailsTogether(t *testing.T) {
	ok := func() *mockMarketData {
		return &mockMarketData{
			institutionalFunc: func(_ context.Context, _, _ string) ([]dto.InstitutionalRow, error) {
				return []dto.InstitutionalRow{{Date: "2025-02-03", Name: "Foreign_Investor", Buy: 1}}, nil
			},
			marginFunc: func(_ context.Context, _, _ string) ([]dto.MarginRow, error) {
				return []dto.MarginRow{{Date: "2025-02-03"}}, nil
			},
			priceFunc: func(_ context.Context, _, _ string) ([]dto.PriceRow, error) {
				return priceRows(5), nil
			},
		}
	}
	transport := errors.New("connection reset by peer")

	priceFails := ok()
	priceFails.priceFunc = func(_ context.Context, _, _ string) ([]dto.PriceRow, error) { return nil, transport }
	instFails := ok()
	instFails.institutionalFunc = func(_ context.Context, _, _ string) ([]dto.InstitutionalRow, error) { return nil, transport }
	marginFails := ok()
	marginFails.marginFunc = func(_ context.Context, _, _ string) ([]dto.MarginRow, error) { return nil, transport }

	for name, md := range map[string]*mockMarketData{
		"price":         priceFails,
		"institutional": instFails,
		"margin":        marginFails,
	} {
		t.Run(fmt.Sprintf("%s fails", name), func(t *testing.T) {
			series := NewInstitutionalService(testConfig(), logger.NewNop(), md).Join(context.Background(), "2330")
			assert.True(t, series.IsEmpty())
			assert.NotNil(t, series.NewestFirst())
		})
	}

	series := NewInstitutionalService(testConfig(), logger.NewNop(), ok()).Join(context.Background(), "2330")
	assert.Equal(t, 5, series.Len())
}

func TestInstitutionalService_Join_PanicFailsTogether(t *testing.T) {
	md := &mockMarketData{
		institutionalFunc: func(_ context.Context, _, _ string) ([]dto.InstitutionalRow, error) {
			return []dto.InstitutionalRow{{Date: "2025-02-03", Name: "Foreign_Investor", Buy: 1}}, nil
		},
		marginFunc: func(_ context.Context, _, _ string) ([]dto.MarginRow, error) {
			panic("unexpected payload")
		},
		priceFunc: func(_ context.Context, _, _ string) ([]dto.PriceRow, error) {
			return priceRows(5), nil
		},
	}

	series := NewInstitutionalService(testConfig(), logger.NewNop(), md).Join(context.Background(), "2330")
	assert.True(t, series.IsEmpty())
	assert.NotNil(t, series.NewestFirst())
}

func TestTableRowsAndChartPoints(t *testing.T) {
	series := entity.NewInstitutionalSeries([]entity.InstitutionalDayRecord{
		{Date: "2025-03-04", ForeignNet: -1500, DealerNet: 2600, MarginBalance: 100, Close: 1040},
		{Date: "2025-03-05", ForeignNet: 17_499_600, InvestmentTrustNet: -300_000, Close: 1050},
	})

	rows := TableRows(series)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-03-05", rows[0].Date)
	assert.Equal(t, int64(17_499), rows[0].ForeignLots)
	assert.Equal(t, int64(-300), rows[0].InvestmentTrustLots)
	assert.Equal(t, int64(-2), rows[1].ForeignLots)
	assert.Equal(t, int64(2), rows[1].DealerLots)

	points := ChartPoints(series)
	require.Len(t, points, 2)
	assert.Equal(t, "2025-03-04", points[0].Date)
	assert.Equal(t, int64(-1), points[0].Foreign)
	assert.Equal(t, int64(3), points[0].Dealer)
	assert.Equal(t, int64(100), points[0].Margin)
	assert.Equal(t, int64(17_500), points[1].Foreign)
}
