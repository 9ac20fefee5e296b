package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portfolio_site/internal/services"
)

// HomeSections are the in-page sections of the home page, in document order
var HomeSections = []SectionLink{
	{ID: "about", Label: "About"},
	{ID: "skills", Label: "Skills"},
	{ID: "projects", Label: "Projects"},
	{ID: "research", Label: "Research"},
	{ID: "contact", Label: "Contact"},
}

// PageHandler renders the site pages
type PageHandler struct {
	content    *services.ContentService
	formAction string
	log        *zap.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(content *services.ContentService, formAction string, log *zap.Logger) *PageHandler {
	return &PageHandler{content: content, formAction: formAction, log: log}
}

// Home renders the landing page with the education timeline
func (h *PageHandler) Home(c echo.Context) error {
	studies, err := h.content.Studies(c.Request().Context())
	if err != nil {
		h.log.Error("loading studies", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load page content")
	}

	data := newPageData("Home", PageHome, h.formAction, HomeSections, HomeData{Studies: studies})
	return c.Render(http.StatusOK, "index.html", data)
}

// Details renders the details page
func (h *PageHandler) Details(c echo.Context) error {
	return c.Render(http.StatusOK, "details.html", newPageData("Details", PageDetails, h.formAction, nil, nil))
}

// Browse renders the project catalog
func (h *PageHandler) Browse(c echo.Context) error {
	projects, err := h.content.Projects(c.Request().Context())
	if err != nil {
		h.log.Error("loading projects", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load projects")
	}

	views := make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		html, err := services.RenderMarkdown(p.Description)
		if err != nil {
			h.log.Warn("rendering project description", zap.String("slug", p.Slug), zap.Error(err))
		}
		views = append(views, ProjectView{Project: p, DescriptionHTML: html})
	}

	data := newPageData("Browse", PageBrowse, h.formAction, nil, BrowseData{Projects: views})
	return c.Render(http.StatusOK, "browse.html", data)
}

// Profile renders the profile page
func (h *PageHandler) Profile(c echo.Context) error {
	return c.Render(http.StatusOK, "profile.html", newPageData("Profile", PageProfile, h.formAction, nil, nil))
}
