package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/digitranslab/aegisweb/site"
)

// Head renders the <head> element: title, SEO tags, OpenGraph and Twitter
// cards, and the WebSite JSON-LD block.
func Head(meta PageMeta, cfg *site.Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeHead(&buf, meta, cfg)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHead(buf *bytes.Buffer, meta PageMeta, cfg *site.Config) {
	if meta.OGType == "" {
		meta.OGType = "website"
	}
	if meta.Image == "" {
		meta.Image = cfg.OGImage()
	}
	if meta.Description == "" {
		meta.Description = cfg.Description()
	}

	buf.WriteString("<head>")
	buf.WriteString(`<meta charset="utf-8">`)
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	buf.WriteString("<title>" + html.EscapeString(meta.Title) + "</title>")
	metaName(buf, "description", meta.Description)
	metaName(buf, "keywords", strings.Join(cfg.Keywords(), ", "))
	metaName(buf, "author", cfg.Author())
	metaName(buf, "creator", cfg.URL().Author)
	if meta.URL != "" {
		buf.WriteString(`<link rel="canonical" href="` + html.EscapeString(meta.URL) + `">`)
	}
	buf.WriteString(`<link rel="manifest" href="/site.webmanifest">`)

	metaProperty(buf, "og:type", meta.OGType)
	metaProperty(buf, "og:site_name", cfg.Name())
	metaProperty(buf, "og:title", meta.Title)
	metaProperty(buf, "og:description", meta.Description)
	if meta.URL != "" {
		metaProperty(buf, "og:url", meta.URL)
	}
	metaProperty(buf, "og:image", meta.Image)
	metaProperty(buf, "og:image:width", strconv.Itoa(site.OGImageWidth))
	metaProperty(buf, "og:image:height", strconv.Itoa(site.OGImageHeight))
	metaProperty(buf, "og:image:alt", cfg.Name())

	metaName(buf, "twitter:card", "summary_large_image")
	metaName(buf, "twitter:title", meta.Title)
	metaName(buf, "twitter:description", meta.Description)
	metaName(buf, "twitter:image", meta.Image)

	buf.WriteString(`<script type="application/ld+json">` + WebsiteJsonLD(cfg) + `</script>`)
	buf.WriteString("</head>")
}

func metaName(buf *bytes.Buffer, name, content string) {
	buf.WriteString(`<meta name="` + name + `" content="` + html.EscapeString(content) + `">`)
}

func metaProperty(buf *bytes.Buffer, property, content string) {
	buf.WriteString(`<meta property="` + property + `" content="` + html.EscapeString(content) + `">`)
}

// Nav renders the top navigation bar. The brand links to homeHref.
func Nav(items []NavItem, cfg *site.Config, homeHref string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeNav(&buf, items, cfg, homeHref)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeNav(buf *bytes.Buffer, items []NavItem, cfg *site.Config, homeHref string) {
	buf.WriteString(`<nav class="site-nav" aria-label="Primary">`)
	buf.WriteString(`<a class="brand" href="` + safeHref(homeHref) + `">` + html.EscapeString(cfg.Name()) + `</a>`)
	buf.WriteString("<ul>")
	for _, it := range items {
		buf.WriteString("<li>")
		buf.WriteString(`<a href="` + safeHref(it.Href) + `"`)
		if it.Active {
			buf.WriteString(` class="active" aria-current="page"`)
		}
		if it.External {
			buf.WriteString(` target="_blank" rel="noopener noreferrer"`)
		}
		buf.WriteString(">" + html.EscapeString(it.Label) + "</a>")
		buf.WriteString("</li>")
	}
	buf.WriteString("</ul></nav>")
}

func safeHref(href string) string {
	return html.EscapeString(string(templ.URL(href)))
}

// Layout renders a full HTML document around body.
func Layout(meta PageMeta, cfg *site.Config, nav []NavItem, homeHref string, body templ.Component, opts LayoutOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<!DOCTYPE html><html lang="en">`)
		writeHead(&buf, meta, cfg)
		buf.WriteString("<body>")
		writeNav(&buf, nav, cfg, homeHref)
		buf.WriteString("<main>")
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		buf.Reset()

		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}

		buf.WriteString("</main>")
		writeFooter(&buf, cfg)
		if opts.AnalyticsEndpoint != "" {
			writeBeacon(&buf, opts.AnalyticsEndpoint)
		}
		buf.WriteString("</body></html>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeFooter(buf *bytes.Buffer, cfg *site.Config) {
	links := cfg.Links()
	buf.WriteString(`<footer class="site-footer">`)
	buf.WriteString("<p>" + html.EscapeString(cfg.Description()) + "</p>")
	buf.WriteString(`<p><a href="` + safeHref(links.GitHub) + `">GitHub</a> · `)
	buf.WriteString(`<a href="` + safeHref(links.Docs) + `">Docs</a></p>`)
	buf.WriteString("</footer>")
}

func writeBeacon(buf *bytes.Buffer, endpoint string) {
	ep := strconv.Quote(endpoint)
	buf.WriteString(`<script>(function(){try{fetch(` + ep +
		`,{method:"POST",keepalive:true,headers:{"Content-Type":"application/json"},` +
		`body:JSON.stringify({path:location.pathname,referrer:document.referrer,` +
		`screen_size:screen.width+"x"+screen.height})});}catch(e){}})();</script>`)
}

// WorkspacesPage is the body of the home route.
func WorkspacesPage(cfg *site.Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		links := cfg.Links()
		var buf bytes.Buffer
		buf.WriteString(`<section class="workspaces">`)
		buf.WriteString("<h1>Workspaces</h1>")
		buf.WriteString("<p>" + html.EscapeString(cfg.Description()) + "</p>")
		buf.WriteString(`<p>New here? Read the <a href="` + safeHref(links.Docs) + `">documentation</a>`)
		buf.WriteString(` or start from a <a href="` + safeHref(links.Playbooks) + `">playbook</a>.</p>`)
		buf.WriteString("</section>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// NotFound is the body of the 404 page.
func NotFound(homeHref string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="error"><h1>Page not found</h1>`+
			`<p><a href="`+safeHref(homeHref)+`">Back to workspaces</a></p></section>`)
		return err
	})
}

// ServerError is the body of the 5xx page.
func ServerError() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="error"><h1>Something went wrong</h1>`+
			`<p>Please try again in a moment.</p></section>`)
		return err
	})
}
