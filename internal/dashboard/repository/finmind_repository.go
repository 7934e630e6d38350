package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tw-stock-insight/internal/dashboard/config"
	"tw-stock-insight/internal/dashboard/dto"
	"tw-stock-insight/pkg/common"
	"tw-stock-insight/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type finMindRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewFinMindRepository creates a MarketDataRepository for the FinMind v4 data API.
func NewFinMindRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.FinMind.MaxRequestPerMinute)
	// The joiner issues three requests at once.
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 3)
	return &finMindRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Dashboard.CallTimeout,
		},
		requestLimiter: requestLimiter,
	}
}

func (r *finMindRepository) InstitutionalBuySell(ctx context.Context, stockID, startDate string) ([]dto.InstitutionalRow, error) {
	return fetchDataset[dto.InstitutionalRow](ctx, r, dto.FinMindQuery{
		Dataset:   common.DatasetInstitutionalInvestors,
		StockID:   stockID,
		StartDate: startDate,
	})
}

func (r *finMindRepository) MarginShortBalances(ctx context.Context, stockID, startDate string) ([]dto.MarginRow, error) {
	return fetchDataset[dto.MarginRow](ctx, r, dto.FinMindQuery{
		Dataset:   common.DatasetMarginShortSale,
		StockID:   stockID,
		StartDate: startDate,
	})
}

func (r *finMindRepository) DailyPrices(ctx context.Context, stockID, startDate string) ([]dto.PriceRow, error) {
	return fetchDataset[dto.PriceRow](ctx, r, dto.FinMindQuery{
		Dataset:   common.DatasetStockPrice,
		StockID:   stockID,
		StartDate: startDate,
	})
}

func fetchDataset[T any](ctx context.Context, r *finMindRepository, query dto.FinMindQuery) ([]T, error) {
	body, err := r.sendRequest(ctx, query)
	if err != nil {
		return nil, err
	}

	var envelope dto.FinMindEnvelope[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", query.Dataset, err)
	}
	if envelope.Status != 0 && envelope.Status != http.StatusOK {
		return nil, fmt.Errorf("finmind %s returned status %d: %s", query.Dataset, envelope.Status, envelope.Msg)
	}
	if envelope.Data == nil {
		return []T{}, nil
	}
	return envelope.Data, nil
}

func (r *finMindRepository) sendRequest(ctx context.Context, query dto.FinMindQuery) ([]byte, error) {
	params := url.Values{}
	params.Set("dataset", query.Dataset)
	params.Set("data_id", query.StockID)
	params.Set("start_date", query.StartDate)
	if r.cfg.FinMind.Token != "" {
		params.Set("token", r.cfg.FinMind.Token)
	}
	fields := []zap.Field{
		zap.String("dataset", query.Dataset),
		zap.String("stock_id", query.StockID),
		zap.String("start_date", query.StartDate),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.FinMind.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.cfg.FinMind.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.FinMind.Token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to FinMind API", fields...)
		return nil, fmt.Errorf("failed to send request to FinMind API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to read response body from FinMind API", fields...)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Received non-OK response from FinMind API", fields...)
		return nil, fmt.Errorf("received non-OK response from FinMind API: %d - %s", resp.StatusCode, string(body))
	}

	return body, nil
}
