package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"tw-stock-insight/internal/dashboard/config"
	"tw-stock-insight/internal/dashboard/dto"
	"tw-stock-insight/internal/dashboard/repository"
	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/common"
	"tw-stock-insight/pkg/logger"
	"tw-stock-insight/pkg/utils"
)

// InstitutionalService builds the institutional flow / margin balance series.
type InstitutionalService interface {
	// Join never fails; any upstream error yields an empty series.
	Join(ctx context.Context, ticker string) entity.InstitutionalSeries
}

type institutionalService struct {
	cfg        *config.Config
	log        *logger.Logger
	marketData repository.MarketDataRepository
	now        func() time.Time
}

// NewInstitutionalService creates a new InstitutionalService.
func NewInstitutionalService(cfg *config.Config, log *logger.Logger, marketData repository.MarketDataRepository) InstitutionalService {
	return &institutionalService{
		cfg:        cfg,
		log:        log,
		marketData: marketData,
		now:        utils.TimeNowTaipei,
	}
}

func (s *institutionalService) Join(ctx context.Context, ticker string) entity.InstitutionalSeries {
	startDate := utils.DaysAgo(s.now(), s.cfg.Dashboard.LookbackDays)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
		inst    []dto.InstitutionalRow
		margins []dto.MarginRow
		prices  []dto.PriceRow
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	fetch := func(source string, fn func() error) {
		utils.GoSafe(s.log, func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					record(fmt.Errorf("%s fetch panicked: %v", source, r))
				}
			}()
			if err := fn(); err != nil {
				record(err)
			}
		})
	}

	wg.Add(3)
	fetch("institutional", func() (err error) {
		inst, err = s.marketData.InstitutionalBuySell(ctx, ticker, startDate)
		return err
	})
	fetch("margin", func() (err error) {
		margins, err = s.marketData.MarginShortBalances(ctx, ticker, startDate)
		return err
	})
	fetch("price", func() (err error) {
		prices, err = s.marketData.DailyPrices(ctx, ticker, startDate)
		return err
	})
	wg.Wait()

	// All three sources or nothing: a date without its full context is not shown.
	if len(errs) > 0 {
		s.log.WarnContext(ctx, "Institutional data unavailable, returning empty series",
			logger.StringField("ticker", ticker),
			logger.ErrorField(errors.Join(errs...)),
		)
		return entity.NewInstitutionalSeries(nil)
	}

	series := JoinInstitutional(inst, margins, prices, s.cfg.Dashboard.TradingDays)
	s.log.DebugContext(ctx, "Institutional series joined",
		logger.StringField("ticker", ticker),
		logger.IntField("days", series.Len()),
	)
	return series
}

// JoinInstitutional merges the three FinMind datasets by trading date. The
// date axis comes from the price rows alone: distinct dates, ascending, the
// last window of them. A missing investor class nets to zero and a missing
// margin row yields zero balances.
func JoinInstitutional(inst []dto.InstitutionalRow, margins []dto.MarginRow, prices []dto.PriceRow, window int) entity.InstitutionalSeries {
	closeByDate := make(map[string]float64, len(prices))
	dates := make([]string, 0, len(prices))
	for _, p := range prices {
		if _, seen := closeByDate[p.Date]; !seen {
			dates = append(dates, p.Date)
			closeByDate[p.Date] = p.Close
		}
	}
	sort.Strings(dates)
	if window > 0 && len(dates) > window {
		dates = dates[len(dates)-window:]
	}

	// date -> class -> net
	netByDate := make(map[string]map[string]int64)
	for _, row := range inst {
		classes, ok := netByDate[row.Date]
		if !ok {
			classes = make(map[string]int64)
			netByDate[row.Date] = classes
		}
		if _, dup := classes[row.Name]; dup {
			continue
		}
		classes[row.Name] = row.Buy - row.Sell
	}

	marginByDate := make(map[string]dto.MarginRow, len(margins))
	for _, m := range margins {
		if _, dup := marginByDate[m.Date]; !dup {
			marginByDate[m.Date] = m
		}
	}

	days := make([]entity.InstitutionalDayRecord, 0, len(dates))
	for _, date := range dates {
		classes := netByDate[date]
		margin := marginByDate[date]
		days = append(days, entity.InstitutionalDayRecord{
			Date:               date,
			ForeignNet:         classes[common.InvestorForeign],
			InvestmentTrustNet: classes[common.InvestorInvestmentTrust],
			DealerNet:          classes[common.InvestorDealerSelf] + classes[common.InvestorDealerHedging],
			MarginBalance:      margin.MarginPurchaseTodayBalance,
			ShortBalance:       margin.ShortSaleTodayBalance,
			Close:              closeByDate[date],
		})
	}
	return entity.NewInstitutionalSeries(days)
}

// TableRows returns newest-first rows with lots floored.
func TableRows(series entity.InstitutionalSeries) []dto.InstitutionalTableRow {
	days := series.NewestFirst()
	rows := make([]dto.InstitutionalTableRow, 0, len(days))
	for _, d := range days {
		rows = append(rows, dto.InstitutionalTableRow{
			Date:                d.Date,
			ForeignLots:         entity.ToLots(d.ForeignNet),
			InvestmentTrustLots: entity.ToLots(d.InvestmentTrustNet),
			DealerLots:          entity.ToLots(d.DealerNet),
			MarginBalance:       d.MarginBalance,
			ShortBalance:        d.ShortBalance,
			Close:               d.Close,
		})
	}
	return rows
}

// ChartPoints returns oldest-first points with lots rounded.
func ChartPoints(series entity.InstitutionalSeries) []dto.InstitutionalChartPoint {
	days := series.OldestFirst()
	points := make([]dto.InstitutionalChartPoint, 0, len(days))
	for _, d := range days {
		points = append(points, dto.InstitutionalChartPoint{
			Date:    d.Date,
			Foreign: entity.RoundLots(d.ForeignNet),
			Trust:   entity.RoundLots(d.InvestmentTrustNet),
			Dealer:  entity.RoundLots(d.DealerNet),
			Margin:  d.MarginBalance,
			Short:   d.ShortBalance,
			Close:   d.Close,
		})
	}
	return points
}
