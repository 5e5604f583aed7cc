package aegisweb

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/digitranslab/aegisweb/site"
	"github.com/digitranslab/aegisweb/views"
)

func (a *App) handleRoot(c echo.Context) error {
	return c.Redirect(http.StatusFound, a.Routes.Home)
}

func (a *App) handleHome(c echo.Context) error {
	return a.RenderPage(c, http.StatusOK, "Workspaces", views.WorkspacesPage(a.Site))
}

type siteResponse struct {
	Site   *site.Config    `json:"site"`
	Routes site.RouteTable `json:"routes"`
}

func (a *App) handleSiteConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, siteResponse{Site: a.Site, Routes: a.Routes})
}

type webManifest struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	Description     string `json:"description"`
	StartURL        string `json:"start_url"`
	Display         string `json:"display"`
	BackgroundColor string `json:"background_color"`
	ThemeColor      string `json:"theme_color"`
}

func (a *App) handleManifest(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/manifest+json")
	return c.JSON(http.StatusOK, webManifest{
		Name:            a.Site.Name(),
		ShortName:       a.Site.Name(),
		Description:     a.Site.Description(),
		StartURL:        a.Routes.Home,
		Display:         "standalone",
		BackgroundColor: "#0b1220",
		ThemeColor:      "#0b1220",
	})
}

func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.RenderPage(c, http.StatusNotFound, "Not found", views.NotFound(a.Routes.Home))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
		)
		_ = a.RenderPage(c, code, "Error", views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
