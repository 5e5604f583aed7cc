package site

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Environment variables holding the public base URL of the deployment.
// The legacy name is accepted for installs that still export the
// frontend-era variable.
const (
	EnvAppURL       = "AEGISCAN__PUBLIC_APP_URL"
	EnvLegacyAppURL = "NEXT_PUBLIC_APP_URL"
)

var (
	// ErrMissingBaseURL is returned when no base URL variable is set.
	ErrMissingBaseURL = errors.New("site: base URL is not set")
	// ErrInvalidBaseURL is returned when the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("site: base URL is invalid")
)

// Env is the slice of process environment the site configuration depends on.
type Env struct {
	AppURL string
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnv reads and validates the base URL using lookup.
func LoadEnv(lookup LookupFunc) (Env, error) {
	raw := ""
	for _, key := range []string{EnvAppURL, EnvLegacyAppURL} {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			raw = v
			break
		}
	}
	if raw == "" {
		return Env{}, fmt.Errorf("%w: set %s", ErrMissingBaseURL, EnvAppURL)
	}
	base, err := NormalizeBaseURL(raw)
	if err != nil {
		return Env{}, err
	}
	return Env{AppURL: base}, nil
}

// NormalizeBaseURL validates raw as an absolute http(s) URL and strips
// trailing slashes so paths can be appended with a single "/".
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMissingBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidBaseURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q: scheme must be http or https", ErrInvalidBaseURL, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q: missing host", ErrInvalidBaseURL, raw)
	}
	if u.RawQuery != "" || u.ForceQuery || strings.Contains(raw, "#") {
		return "", fmt.Errorf("%w: %q: query and fragment are not allowed", ErrInvalidBaseURL, raw)
	}
	if u.User != nil {
		return "", fmt.Errorf("%w: %q: credentials are not allowed", ErrInvalidBaseURL, raw)
	}
	base := url.URL{Scheme: u.Scheme, Host: strings.ToLower(u.Host), Path: u.Path, RawPath: u.RawPath}
	return strings.TrimRight(base.String(), "/"), nil
}
