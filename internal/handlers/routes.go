package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"portfolio_site/internal/middleware"
	"portfolio_site/internal/services"
)

// Deps holds everything the routes need
type Deps struct {
	Renderer   echo.Renderer
	Content    *services.ContentService
	Cache      *services.RedisCache // optional
	Relay      *services.FormRelay
	FormAction string
	StaticDir  string
	RateLimit  int
	RateWindow time.Duration

	// TrustedProxies are the CIDRs allowed to set X-Forwarded-For
	TrustedProxies []string
	Logger         *zap.Logger
}

// NewEcho builds the Echo instance with middleware and routes
func NewEcho(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.HTTPErrorHandler = middleware.CustomErrorHandler(d.Logger)

	extractor, err := middleware.IPExtractor(d.TrustedProxies)
	if err != nil {
		d.Logger.Warn("ignoring trusted proxies", zap.Error(err))
		extractor = echo.ExtractIPDirect()
	}
	e.IPExtractor = extractor

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomw.Recover())

	e.Static("/static", d.StaticDir)

	pageHandler := NewPageHandler(d.Content, d.FormAction, d.Logger)
	apiHandler := NewAPIHandler(d.Content, d.Logger)
	contactHandler := NewContactHandler(d.Relay)

	// Pages
	e.GET("/", pageHandler.Home, middleware.ActivePage(PageHome))
	e.GET("/details", pageHandler.Details, middleware.ActivePage(PageDetails))
	e.GET("/browse", pageHandler.Browse, middleware.ActivePage(PageBrowse))
	e.GET("/profile", pageHandler.Profile, middleware.ActivePage(PageProfile))

	// JSON
	e.GET("/active", apiHandler.Active)
	e.GET("/studies", apiHandler.Studies)
	e.GET("/api/layout", apiHandler.Layout)
	e.GET("/healthz", apiHandler.Healthz)

	// Contact relay
	e.POST("/contact", contactHandler.Submit, middleware.ContactRateLimit(d.Cache, d.RateLimit, d.RateWindow, d.Logger))

	return e
}
