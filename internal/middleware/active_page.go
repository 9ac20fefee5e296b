package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	activeNavKey     = "activeNav"
	activePageCookie = "active_page"
)

// ActivePage marks the request as rendering page. The name is kept on the
// request context and in a cookie scoped to the visitor, so /active answers
// per visitor instead of per process.
func ActivePage(page string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(activeNavKey, page)
			c.SetCookie(&http.Cookie{
				Name:     activePageCookie,
				Value:    page,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			return next(c)
		}
	}
}

// ActiveNav returns the page set by ActivePage for this request, or "".
func ActiveNav(c echo.Context) string {
	if page, ok := c.Get(activeNavKey).(string); ok {
		return page
	}
	return ""
}

// LastActivePage returns the page the visitor last rendered, or fallback.
func LastActivePage(c echo.Context, fallback string) string {
	if page := ActiveNav(c); page != "" {
		return page
	}
	cookie, err := c.Cookie(activePageCookie)
	if err != nil || cookie.Value == "" {
		return fallback
	}
	return cookie.Value
}
