package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitranslab/aegisweb/site"
)

func testSite(t *testing.T) *site.Config {
	t.Helper()
	cfg, err := site.New(site.Env{AppURL: "https://example.com"})
	require.NoError(t, err)
	return cfg
}

func TestBuildNavActiveState(t *testing.T) {
	cfg := testSite(t)
	routes := site.Routes()

	items := BuildNav(cfg, routes, "/workspaces")
	require.NotEmpty(t, items)
	assert.Equal(t, "/workspaces", items[0].Href)
	assert.True(t, items[0].Active)

	items = BuildNav(cfg, routes, "/workspaces/abc")
	assert.True(t, items[0].Active)

	items = BuildNav(cfg, routes, "/workspacesx")
	assert.False(t, items[0].Active)

	items = BuildNav(cfg, routes, "")
	assert.False(t, items[0].Active)
}

func TestBuildNavExternalLinks(t *testing.T) {
	cfg := testSite(t)
	items := BuildNav(cfg, site.Routes(), "/")

	external := map[string]bool{}
	for _, it := range items {
		if it.External {
			external[it.Href] = true
		}
	}
	for _, href := range cfg.Links().Map() {
		assert.True(t, external[href], href)
	}
}

func TestMetaFor(t *testing.T) {
	cfg := testSite(t)

	m := MetaFor(cfg, "", "/")
	assert.Equal(t, "Aegiscan", m.Title)
	assert.Equal(t, "https://example.com/", m.URL)
	assert.Equal(t, "https://example.com/og.jpg", m.Image)

	m = MetaFor(cfg, "Workspaces", "/workspaces")
	assert.Equal(t, "Workspaces | Aegiscan", m.Title)
	assert.Equal(t, "https://example.com/workspaces", m.URL)
}

func TestHeadRendersOpenGraph(t *testing.T) {
	cfg := testSite(t)
	var buf bytes.Buffer
	require.NoError(t, Head(MetaFor(cfg, "Workspaces", "/workspaces"), cfg).Render(context.Background(), &buf))
	out := buf.String()

	assert.Contains(t, out, `<meta property="og:image" content="https://example.com/og.jpg">`)
	assert.Contains(t, out, `<meta property="og:url" content="https://example.com/workspaces">`)
	assert.Contains(t, out, `<link rel="canonical" href="https://example.com/workspaces">`)
	assert.Contains(t, out, `<meta name="keywords" content="workflow automation, `)
	assert.Contains(t, out, `application/ld+json`)
	assert.Contains(t, out, `<title>Workspaces | Aegiscan</title>`)
}

func TestHeadEscapesTitle(t *testing.T) {
	cfg := testSite(t)
	var buf bytes.Buffer
	meta := MetaFor(cfg, `<script>x</script>`, "/")
	require.NoError(t, Head(meta, cfg).Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "<script>x</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestNavMarksActiveItem(t *testing.T) {
	cfg := testSite(t)
	routes := site.Routes()
	var buf bytes.Buffer
	require.NoError(t, Nav(BuildNav(cfg, routes, "/workspaces"), cfg, routes.Home).Render(context.Background(), &buf))
	out := buf.String()

	assert.Contains(t, out, `<a class="brand" href="/workspaces">Aegiscan</a>`)
	assert.Contains(t, out, `<a href="/workspaces" class="active" aria-current="page">Workspaces</a>`)
	assert.Contains(t, out, `href="https://docs.aegiscan.com" target="_blank"`)
}

func TestLayoutWrapsBody(t *testing.T) {
	cfg := testSite(t)
	routes := site.Routes()
	page := Layout(
		MetaFor(cfg, "Workspaces", routes.Home),
		cfg,
		BuildNav(cfg, routes, routes.Home),
		routes.Home,
		WorkspacesPage(cfg),
		LayoutOptions{AnalyticsEndpoint: "/api/analytics/collect"},
	)
	var buf bytes.Buffer
	require.NoError(t, page.Render(context.Background(), &buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<h1>Workspaces</h1>")
	assert.Less(t, strings.Index(out, "<main>"), strings.Index(out, "<h1>Workspaces</h1>"))
	assert.Contains(t, out, `fetch("/api/analytics/collect"`)
	assert.True(t, strings.HasSuffix(out, "</body></html>"))
}

func TestLayoutWithoutAnalytics(t *testing.T) {
	cfg := testSite(t)
	var buf bytes.Buffer
	require.NoError(t, Layout(MetaFor(cfg, "", "/"), cfg, nil, "/workspaces", NotFound("/workspaces"), LayoutOptions{}).
		Render(context.Background(), &buf))
	assert.NotContains(t, buf.String(), "fetch(")
	assert.Contains(t, buf.String(), "Page not found")
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := testSite(t)
	ld := WebsiteJsonLD(cfg)
	assert.Contains(t, ld, `"@type":"WebSite"`)
	assert.Contains(t, ld, `"url":"https://example.com/"`)
	assert.Contains(t, ld, `"image":"https://example.com/og.jpg"`)
}
