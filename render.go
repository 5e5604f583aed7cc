package aegisweb

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/digitranslab/aegisweb/analytics"
	"github.com/digitranslab/aegisweb/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// RenderPage wraps body in the site layout for the current request path.
func (a *App) RenderPage(c echo.Context, code int, title string, body templ.Component) error {
	p := c.Request().URL.Path
	page := views.Layout(
		views.MetaFor(a.Site, title, p),
		a.Site,
		views.BuildNav(a.Site, a.Routes, p),
		a.Routes.Home,
		body,
		a.layoutOptions(),
	)
	return RenderStatus(c, code, page)
}

func (a *App) layoutOptions() views.LayoutOptions {
	var opts views.LayoutOptions
	if a.analyticsStore != nil {
		opts.AnalyticsEndpoint = analytics.CollectPath
	}
	return opts
}
