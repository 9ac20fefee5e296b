package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio_site/internal/services"
)

func TestActivePage(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/browse", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := ActivePage("browse")(func(c echo.Context) error {
		seen = ActiveNav(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	assert.Equal(t, "browse", seen)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "active_page", cookies[0].Name)
	assert.Equal(t, "browse", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLastActivePage(t *testing.T) {
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/active", nil), httptest.NewRecorder())
	assert.Equal(t, "home", LastActivePage(c, "home"))

	req := httptest.NewRequest(http.MethodGet, "/active", nil)
	req.AddCookie(&http.Cookie{Name: "active_page", Value: "profile"})
	c = e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "profile", LastActivePage(c, "home"))

	c.Set(activeNavKey, "details")
	assert.Equal(t, "details", LastActivePage(c, "home"))
}

func TestCustomErrorHandler(t *testing.T) {
	e := echo.New()
	handler := CustomErrorHandler(zap.NewNop())

	tests := []struct {
		name        string
		path        string
		accept      string
		err         error
		code        int
		contentType string
		body        string
	}{
		{"page not found", "/missing", "", echo.ErrNotFound, http.StatusNotFound, echo.MIMETextHTML, "Page Not Found"},
		{"api not found", "/api/missing", "", echo.ErrNotFound, http.StatusNotFound, echo.MIMEApplicationJSON, `"errors"`},
		{"accept json", "/missing", echo.MIMEApplicationJSON, echo.ErrNotFound, http.StatusNotFound, echo.MIMEApplicationJSON, "doesn't exist"},
		{"plain error", "/", "", assert.AnError, http.StatusInternalServerError, echo.MIMETextHTML, "Something went wrong"},
		{"custom message", "/studies", "", echo.NewHTTPError(http.StatusInternalServerError, "Failed to load studies"), http.StatusInternalServerError, echo.MIMEApplicationJSON, "Failed to load studies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set(echo.HeaderAccept, tt.accept)
			}
			rec := httptest.NewRecorder()
			handler(tt.err, e.NewContext(req, rec))

			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), tt.contentType)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestContactRateLimitPassThroughWithoutCache(t *testing.T) {
	e := echo.New()
	mw := ContactRateLimit(nil, 1, time.Minute, zap.NewNop())

	calls := 0
	h := mw(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodPost, "/contact", nil), rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 3, calls)
}

func TestIPExtractor(t *testing.T) {
	newRequest := func(remote, xff string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = remote + ":4242"
		req.Header.Set(echo.HeaderXForwardedFor, xff)
		return req
	}

	direct, err := IPExtractor(nil)
	require.NoError(t, err)
	assert.Equal(t, "9.9.9.9", direct(newRequest("9.9.9.9", "1.1.1.1")))
	assert.Equal(t, "9.9.9.9", direct(newRequest("9.9.9.9", "2.2.2.2")))

	proxied, err := IPExtractor([]string{"10.0.0.0/8"})
	require.NoError(t, err)
	assert.Equal(t, "1.1.1.1", proxied(newRequest("10.1.2.3", "1.1.1.1")))
	// a client outside the trusted range cannot choose its address
	assert.Equal(t, "9.9.9.9", proxied(newRequest("9.9.9.9", "1.1.1.1")))

	_, err = IPExtractor([]string{"not-a-cidr"})
	assert.Error(t, err)
}

func TestContactRateLimitRejectsOverLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	cache, err := services.NewRedisCache(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer cache.Close()

	e := echo.New()
	e.IPExtractor = echo.ExtractIPDirect()
	h := ContactRateLimit(cache, 2, time.Hour, zap.NewNop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	post := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = remote + ":4242"
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		return rec
	}

	assert.Equal(t, http.StatusOK, post("9.9.9.9").Code)
	assert.Equal(t, http.StatusOK, post("9.9.9.9").Code)

	rec := post("9.9.9.9")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), RateLimitMessage)

	assert.Equal(t, http.StatusOK, post("8.8.8.8").Code, "limits are per client")

	mr.FastForward(time.Hour)
	assert.Equal(t, http.StatusOK, post("9.9.9.9").Code)
}

func TestContactRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	cache, err := services.NewRedisCache(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer cache.Close()
	mr.Close()

	e := echo.New()
	h := ContactRateLimit(cache, 1, time.Hour, zap.NewNop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodPost, "/contact", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorPageBackLink(t *testing.T) {
	e := echo.New()
	handler := CustomErrorHandler(zap.NewNop())

	render := func(method, path, cookie string, err error) string {
		req := httptest.NewRequest(method, path, nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: activePageCookie, Value: cookie})
		}
		rec := httptest.NewRecorder()
		handler(err, e.NewContext(req, rec))
		return rec.Body.String()
	}

	body := render(http.MethodGet, "/missing", "", echo.ErrNotFound)
	assert.Contains(t, body, `href="/"`)
	assert.Contains(t, body, "Back to home")

	body = render(http.MethodGet, "/missing", "browse", echo.ErrNotFound)
	assert.Contains(t, body, `href="/browse"`)
	assert.Contains(t, body, "Back to Browse")

	body = render(http.MethodGet, "/missing", "//evil.example", echo.ErrNotFound)
	assert.Contains(t, body, `href="/"`)
	assert.NotContains(t, body, "evil.example")

	body = render(http.MethodGet, "/browse", "", echo.NewHTTPError(http.StatusInternalServerError, "Failed to load projects"))
	assert.Contains(t, body, `href="/browse"`)
	assert.Contains(t, body, "Try again")
	assert.Contains(t, body, "Failed to load projects")
	assert.Contains(t, body, `<p class="error__code">500</p>`)
}
