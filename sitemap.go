package aegisweb

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// sitemapPaths lists the public pages worth indexing: every route alias.
func (a *App) sitemapPaths() []string {
	return []string{a.Routes.Home}
}

func (a *App) handleSitemap(c echo.Context) error {
	var urls []sitemapURL
	for _, p := range a.sitemapPaths() {
		urls = append(urls, sitemapURL{Loc: a.Site.Absolute(p), ChangeFreq: "weekly"})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: " + a.Site.Absolute("sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}
