package http

import (
	"errors"
	"net/http"
	"strings"

	"tw-stock-insight/internal/dashboard/dto"
	"tw-stock-insight/internal/dashboard/service"
	"tw-stock-insight/pkg/logger"
	"tw-stock-insight/pkg/telegram"

	"github.com/labstack/echo/v4"
)

// SessionHandler drives the shared dashboard session.
type SessionHandler struct {
	session *service.Session
	digest  service.DigestService
	logger  *logger.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(session *service.Session, digest service.DigestService, logger *logger.Logger) *SessionHandler {
	return &SessionHandler{session: session, digest: digest, logger: logger}
}

// RegisterRoutes registers the session routes to the Echo group.
func (h *SessionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/search", h.Search)
	g.GET("/state", h.GetState)
	g.POST("/digest", h.SendDigest)
}

// Search godoc
// @Summary Search a ticker
// @Description Start a new search, superseding any search in flight, and wait for its outcome
// @Tags session
// @Accept  json
// @Produce  json
// @Param   request  body    dto.SearchRequest   true    "Ticker to search"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /search [post]
func (h *SessionHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Ticker is required"})
	}

	state := h.session.Submit(c.Request().Context(), ticker)
	return c.JSON(http.StatusOK, toStateResponse(state))
}

// GetState godoc
// @Summary Current session state
// @Description Idle, loading, ready (with the dashboard) or failed (with a message)
// @Tags session
// @Produce  json
// @Success 200 {object} dto.StateResponse
// @Router /state [get]
func (h *SessionHandler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, toStateResponse(h.session.Current()))
}

// SendDigest godoc
// @Summary Send a Telegram digest
// @Description Send the ready dashboard to the configured Telegram chat
// @Tags session
// @Produce  json
// @Success 200 {object} dto.DigestResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /digest [post]
func (h *SessionHandler) SendDigest(c echo.Context) error {
	parts, err := h.digest.Send(c.Request().Context())
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, dto.DigestResponse{Parts: parts})
	case errors.Is(err, service.ErrNoDashboard):
		return c.JSON(http.StatusConflict, echo.Map{"error": "No dashboard is ready"})
	case errors.Is(err, telegram.ErrNotConfigured):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Telegram is not configured"})
	default:
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "Failed to send digest"})
	}
}
