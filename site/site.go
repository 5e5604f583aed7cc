// Package site holds the product identity shared by every page: name,
// description, keywords, public URLs, community links and the route
// aliases used by navigation.
//
// The configuration is built once from the environment and never changes
// for the lifetime of the process, so it is safe to read from any goroutine.
package site

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
)

const (
	defaultName        = "Aegiscan"
	defaultAuthor      = "Aegiscan"
	defaultAuthorURL   = "Aegiscan"
	defaultDescription = "The open workflow automation platform for security and IT engineers."

	// OGImagePath is appended to the base URL to form the OpenGraph image URL.
	OGImagePath = "/og.jpg"

	// OpenGraph image dimensions recommended by link preview services.
	OGImageWidth  = 1200
	OGImageHeight = 630
)

var defaultKeywords = []string{
	"workflow automation",
	"security automation",
	"SOAR",
	"IT automation",
	"open source",
}

// Links are the fixed external destinations shown in navigation and footers.
type Links struct {
	GitHub    string `json:"github"`
	Discord   string `json:"discord"`
	Docs      string `json:"docs"`
	Playbooks string `json:"playbooks"`
}

var defaultLinks = Links{
	GitHub:    "https://github.com/DigitransLab/aegiscan",
	Discord:   "https://discord.gg/n3GF4qxFU8",
	Docs:      "https://docs.aegiscan.com",
	Playbooks: "https://github.com/DigitransLab/aegiscan/tree/main/playbooks",
}

// Map returns the links keyed by their JSON names.
func (l Links) Map() map[string]string {
	return map[string]string{
		"github":    l.GitHub,
		"discord":   l.Discord,
		"docs":      l.Docs,
		"playbooks": l.Playbooks,
	}
}

// URLs groups the public base URL and the author URL.
type URLs struct {
	Base   string `json:"base"`
	Author string `json:"author"`
}

// Config is the immutable site configuration record.
type Config struct {
	name        string
	author      string
	description string
	keywords    []string
	url         URLs
	links       Links
	ogImage     string
}

// New builds the site configuration from a validated environment.
func New(env Env) (*Config, error) {
	base, err := NormalizeBaseURL(env.AppURL)
	if err != nil {
		return nil, err
	}
	kw := make([]string, len(defaultKeywords))
	copy(kw, defaultKeywords)
	return &Config{
		name:        defaultName,
		author:      defaultAuthor,
		description: defaultDescription,
		keywords:    kw,
		url:         URLs{Base: base, Author: defaultAuthorURL},
		links:       defaultLinks,
		ogImage:     base + OGImagePath,
	}, nil
}

// Name is the product name used in titles and link previews.
func (c *Config) Name() string { return c.name }

// Author is the publisher credited in page metadata.
func (c *Config) Author() string { return c.author }

// Description is the one-line summary used for meta and OpenGraph tags.
func (c *Config) Description() string { return c.description }

// URL returns the base and author URLs.
func (c *Config) URL() URLs { return c.url }

// BaseURL is the public base URL without a trailing slash.
func (c *Config) BaseURL() string { return c.url.Base }

// Links returns the external destinations.
func (c *Config) Links() Links { return c.links }

// OGImage is the absolute URL of the OpenGraph image.
func (c *Config) OGImage() string { return c.ogImage }

// Keywords returns a copy of the keyword list.
func (c *Config) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// Absolute joins p onto the base URL with exactly one slash between them.
func (c *Config) Absolute(p string) string {
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return c.url.Base + "/"
	}
	return c.url.Base + "/" + p
}

type configJSON struct {
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	URL         URLs     `json:"url"`
	Links       Links    `json:"links"`
	OGImage     string   `json:"ogImage"`
}

// MarshalJSON encodes the record with the field names page consumers read.
func (c *Config) MarshalJSON() ([]byte, error) {
	return json.Marshal(configJSON{
		Name:        c.name,
		Author:      c.author,
		Description: c.description,
		Keywords:    c.keywords,
		URL:         c.url,
		Links:       c.links,
		OGImage:     c.ogImage,
	})
}

var loadOnce = sync.OnceValues(func() (*Config, error) {
	env, err := LoadEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return New(env)
})

// Load returns the process-wide configuration, reading the environment on
// the first call only. Every call returns the same pointer and error.
func Load() (*Config, error) {
	return loadOnce()
}

// MustLoad is Load for startup paths; it panics when the environment is invalid.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
