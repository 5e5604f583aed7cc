package views

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image, defaults to the site image
}

// NavItem is a rendered navigation entry.
type NavItem struct {
	Label    string
	Href     string
	Active   bool
	External bool
}

// LayoutOptions toggles optional parts of the page shell.
type LayoutOptions struct {
	AnalyticsEndpoint string // empty disables the page view beacon
}
