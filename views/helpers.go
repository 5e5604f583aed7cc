package views

import (
	"encoding/json"

	"github.com/digitranslab/aegisweb/site"
)

// MetaFor fills page metadata from the site record. An empty title uses the
// site name alone; otherwise the title is suffixed with it.
func MetaFor(cfg *site.Config, title, path string) PageMeta {
	full := cfg.Name()
	if title != "" {
		full = title + " | " + cfg.Name()
	}
	return PageMeta{
		Title:       full,
		Description: cfg.Description(),
		URL:         cfg.Absolute(path),
		OGType:      "website",
		Image:       cfg.OGImage(),
	}
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block from the site record.
func WebsiteJsonLD(cfg *site.Config) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name(),
		"url":         cfg.Absolute(""),
		"description": cfg.Description(),
		"image":       cfg.OGImage(),
		"sameAs":      []string{cfg.Links().GitHub, cfg.Links().Discord},
	}
	if a := cfg.Author(); a != "" {
		data["author"] = map[string]string{
			"@type": "Organization",
			"name":  a,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
