package http

import (
	"net/http"
	"strings"

	"tw-stock-insight/internal/dashboard/dto"
	"tw-stock-insight/internal/dashboard/repository"
	"tw-stock-insight/internal/dashboard/service"
	"tw-stock-insight/pkg/common"
	"tw-stock-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler serves stateless per-symbol views.
type StockHandler struct {
	aggregator    service.AggregatorService
	institutional service.InstitutionalService
	sentiment     service.SentimentService
	headlines     repository.HeadlineRepository
	logger        *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(
	aggregator service.AggregatorService,
	institutional service.InstitutionalService,
	sentiment service.SentimentService,
	headlines repository.HeadlineRepository,
	logger *logger.Logger,
) *StockHandler {
	return &StockHandler{
		aggregator:    aggregator,
		institutional: institutional,
		sentiment:     sentiment,
		headlines:     headlines,
		logger:        logger,
	}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:symbol", h.GetDashboard)
	g.GET("/:symbol/institutional", h.GetInstitutional)
	g.GET("/:symbol/sentiment", h.GetSentiment)
	g.GET("/:symbol/headlines", h.GetHeadlines)
}

// GetDashboard godoc
// @Summary Aggregate a dashboard
// @Description Run a full aggregation for one ticker without touching the session state
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true    "Ticker, e.g. 2330"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stocks/{symbol} [get]
func (h *StockHandler) GetDashboard(c echo.Context) error {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}

	dashboard, err := h.aggregator.Aggregate(c.Request().Context(), symbol)
	if err != nil {
		// The service layer already logs the error
		return c.JSON(http.StatusBadGateway, echo.Map{"error": common.GenericFetchErrorMessage})
	}
	return c.JSON(http.StatusOK, toDashboardResponse(dashboard))
}

// GetInstitutional godoc
// @Summary Institutional flows and margin balances
// @Description Last trading days of institutional net flows (lots), margin/short balances and closing price. Empty when any upstream dataset is unavailable.
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true    "Ticker, e.g. 2330"
// @Success 200 {object} dto.InstitutionalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/institutional [get]
func (h *StockHandler) GetInstitutional(c echo.Context) error {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}

	series := h.institutional.Join(c.Request().Context(), symbol)
	return c.JSON(http.StatusOK, toInstitutionalResponse(series))
}

// GetSentiment godoc
// @Summary Related sentiment items
// @Description Community sentiment items mentioning the symbol or company name, with their aggregate polarity
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true     "Ticker, e.g. 2330"
// @Param   name    query   string false    "Company name, defaults to the symbol"
// @Success 200 {object} dto.SentimentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/sentiment [get]
func (h *StockHandler) GetSentiment(c echo.Context) error {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		name = symbol
	}

	items := h.sentiment.Related(c.Request().Context(), symbol, name)
	return c.JSON(http.StatusOK, dto.SentimentResponse{
		Items:    items,
		Polarity: service.Aggregate(items),
	})
}

// GetHeadlines godoc
// @Summary RSS headlines
// @Description Recent news headlines for the symbol from the configured RSS search
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true     "Ticker, e.g. 2330"
// @Param   name    query   string false    "Company name to widen the search"
// @Success 200 {object} dto.HeadlinesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/headlines [get]
func (h *StockHandler) GetHeadlines(c echo.Context) error {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Symbol is required"})
	}

	headlines, err := h.headlines.Search(c.Request().Context(), symbol, strings.TrimSpace(c.QueryParam("name")))
	if err != nil {
		h.logger.Error("Failed to search headlines", logger.StringField("symbol", symbol), logger.ErrorField(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Failed to get headlines"})
	}
	return c.JSON(http.StatusOK, dto.HeadlinesResponse{Symbol: symbol, Headlines: headlines})
}
