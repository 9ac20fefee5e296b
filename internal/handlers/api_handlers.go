package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portfolio_site/internal/middleware"
	"portfolio_site/internal/services"
	"portfolio_site/internal/ui/shell"
	"portfolio_site/internal/ui/tracker"
)

// LayoutResponse carries the page behaviour constants to the browser script
type LayoutResponse struct {
	Sections        []string       `json:"sections"`
	Tracker         tracker.Config `json:"tracker"`
	ScrollGap       float64        `json:"scrollGap"`
	TopAlias        string         `json:"topAlias"`
	RevealThreshold float64        `json:"revealThreshold"`
	ToTopThreshold  float64        `json:"toTopThreshold"`
}

// APIHandler serves the small JSON endpoints used by the browser script
type APIHandler struct {
	content *services.ContentService
	log     *zap.Logger
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(content *services.ContentService, log *zap.Logger) *APIHandler {
	return &APIHandler{content: content, log: log}
}

// Active returns the page the visitor last navigated to
func (h *APIHandler) Active(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"active": middleware.LastActivePage(c, PageHome),
	})
}

// Studies returns the education timeline as JSON
func (h *APIHandler) Studies(c echo.Context) error {
	studies, err := h.content.Studies(c.Request().Context())
	if err != nil {
		h.log.Error("loading studies", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load studies")
	}
	return c.JSON(http.StatusOK, studies)
}

// Layout returns the section tracker and navigation shell constants
func (h *APIHandler) Layout(c echo.Context) error {
	ids := make([]string, 0, len(HomeSections))
	for _, s := range HomeSections {
		ids = append(ids, s.ID)
	}
	return c.JSON(http.StatusOK, LayoutResponse{
		Sections:        ids,
		Tracker:         tracker.DefaultConfig(),
		ScrollGap:       shell.ScrollGap,
		TopAlias:        shell.TopAlias,
		RevealThreshold: shell.RevealThreshold,
		ToTopThreshold:  shell.ToTopThreshold,
	})
}

// Healthz reports liveness
func (h *APIHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
