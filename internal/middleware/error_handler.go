package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"portfolio_site/web/templates/pages"
)

// jsonPrefixes are the paths answered with JSON errors instead of a page
var jsonPrefixes = []string{"/api", "/active", "/studies", "/contact", "/healthz"}

// CustomErrorHandler creates the Echo error handler. Page requests get the
// error page; JSON endpoints get {"errors":[{"message":...}]}.
func CustomErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		errorTitle := "Internal Server Error"
		errorMessage := ""

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok && msg != "" {
				errorMessage = msg
			}

			switch code {
			case http.StatusNotFound:
				errorTitle = "Page Not Found"
				if errorMessage == "" || errorMessage == http.StatusText(code) {
					errorMessage = "The page you're looking for doesn't exist."
				}
			case http.StatusMethodNotAllowed:
				errorTitle = "Method Not Allowed"
				if errorMessage == "" {
					errorMessage = "This page can't be used that way."
				}
			case http.StatusBadRequest:
				errorTitle = "Bad Request"
				if errorMessage == "" {
					errorMessage = "The request could not be processed."
				}
			default:
				if errorMessage == "" {
					errorMessage = "Something went wrong. Please try again later."
				}
			}
		} else {
			errorMessage = "Something went wrong. Please try again later."
		}

		if code >= http.StatusInternalServerError {
			log.Error("request failed", zap.Int("status", code), zap.String("path", c.Request().URL.Path), zap.Error(err))
		} else {
			log.Debug("request rejected", zap.Int("status", code), zap.String("path", c.Request().URL.Path), zap.Error(err))
		}

		if wantsJSON(c) {
			if jerr := c.JSON(code, map[string]interface{}{
				"errors": []map[string]string{{"message": errorMessage}},
			}); jerr != nil {
				log.Error("writing error response", zap.Error(jerr))
			}
			return
		}

		backLink, backText := backLinkFor(c, code)
		props := pages.ErrorPageProps{
			Code:         code,
			ErrorTitle:   errorTitle,
			ErrorMessage: errorMessage,
			BackLink:     backLink,
			BackText:     backText,
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(code)
		if renderErr := pages.ErrorPage(props).Render(c.Request().Context(), c.Response()); renderErr != nil {
			log.Error("failed to render error page", zap.Error(renderErr))
		}
	}
}

// backPages are the pages an error page may link back to, by cookie value
var backPages = map[string]string{
	"details": "Details",
	"browse":  "Browse",
	"profile": "Profile",
}

// backLinkFor offers a retry for failed page loads, otherwise the page the
// visitor came from.
func backLinkFor(c echo.Context, code int) (string, string) {
	req := c.Request()
	if code >= http.StatusInternalServerError && req.Method == http.MethodGet {
		return req.URL.Path, "Try again"
	}
	page := LastActivePage(c, "")
	if label, ok := backPages[page]; ok {
		return "/" + page, "Back to " + label
	}
	return "/", "Back to home"
}

func wantsJSON(c echo.Context) bool {
	path := c.Request().URL.Path
	for _, p := range jsonPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
