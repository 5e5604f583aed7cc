// Package analytics counts page views on the console shell without
// storing raw IP addresses or cookies.
package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// Visit represents a single page view.
type Visit struct {
	ID         int64     `json:"-"`
	VisitorID  string    `json:"visitor_id"` // Salted hash of IP and User-Agent
	IPHash     string    `json:"-"`
	Browser    string    `json:"browser"`
	OS         string    `json:"os"`
	Device     string    `json:"device"` // Desktop, Mobile, Tablet
	Path       string    `json:"path"`
	Referrer   string    `json:"referrer"` // Referrer domain, or "Direct"
	ScreenSize string    `json:"screen_size"`
	Timestamp  time.Time `json:"timestamp"`
}

// PageStat represents page view statistics.
type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// hashWithSalt returns the first 16 hex characters of sha256(salt + parts).
func hashWithSalt(salt string, parts ...string) string {
	h := sha256.New()
	h.Write([]byte(salt + strings.Join(parts, "|")))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// HashIP creates a salted SHA-256 hash of an IP address.
func HashIP(salt, ip string) string {
	return hashWithSalt(salt, ip)
}

// GenerateVisitorID creates a salted visitor ID from IP and User-Agent.
func GenerateVisitorID(salt, ip, userAgent string) string {
	return hashWithSalt(salt, ip, userAgent)
}

// ParseUserAgent extracts browser, OS, and device from a User-Agent string.
func ParseUserAgent(ua string) (browser, os, device string) {
	ua = strings.ToLower(ua)

	// more specific patterns first: Edge and Opera UAs also contain "chrome"
	switch {
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr/"):
		browser = "Opera"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	default:
		browser = "Other"
	}

	// Android before Linux
	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		os = "iOS"
	case strings.Contains(ua, "macintosh") || strings.Contains(ua, "mac os"):
		os = "macOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	default:
		os = "Other"
	}

	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		device = "Tablet"
	case strings.Contains(ua, "mobile"):
		device = "Mobile"
	default:
		device = "Desktop"
	}

	return
}

var botMarkers = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"yandex", "baidu", "facebookexternalhit", "headlesschrome",
}

// IsBot reports whether the User-Agent is likely a bot or crawler.
// Link preview fetchers (Slackbot, Twitterbot, Discordbot) count as bots.
func IsBot(ua string) bool {
	ua = strings.ToLower(ua)
	for _, m := range botMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}

var referrerDomainRegex = regexp.MustCompile(`^https?://(?:www\.)?([^/:?#]+)`)

// CleanReferrer reduces a referrer URL to its domain.
func CleanReferrer(ref string) string {
	if ref == "" {
		return "Direct"
	}
	if m := referrerDomainRegex.FindStringSubmatch(ref); len(m) > 1 {
		return strings.ToLower(m[1])
	}
	return "Other"
}
