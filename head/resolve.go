package head

import (
	"regexp"
	"strings"
)

var absoluteURLPattern = regexp.MustCompile(`(?i)^[a-z][a-z\d+\-.]*://`)

// Options configures head synthesis.
type Options struct {
	// SiteURL is the configured site origin. It always wins over RuntimeOrigin.
	SiteURL string
	// RuntimeOrigin is the origin the page is being served from, if any.
	// It is empty while building static output.
	RuntimeOrigin string
	// StudioName is used as the default title and og:site_name.
	StudioName string
	// DefaultDescription backs the description and og:description entries.
	DefaultDescription string
}

// IsAbsoluteURL reports whether value starts with a scheme and "://".
func IsAbsoluteURL(value string) bool {
	return absoluteURLPattern.MatchString(value)
}

// EnsureLeadingSlash prefixes value with "/" when missing.
func EnsureLeadingSlash(value string) string {
	if strings.HasPrefix(value, "/") {
		return value
	}
	return "/" + value
}

func (o Options) baseOrigin() string {
	if o.SiteURL != "" {
		return strings.TrimRight(o.SiteURL, "/")
	}
	return strings.TrimRight(o.RuntimeOrigin, "/")
}

// resolveURL returns raw (or fallbackPath when raw is empty) as an absolute
// URL. It returns "" when no origin is known.
func (o Options) resolveURL(raw, fallbackPath string) string {
	candidate := raw
	if candidate == "" {
		candidate = fallbackPath
	}
	if candidate == "" {
		return ""
	}
	if IsAbsoluteURL(candidate) {
		return candidate
	}

	base := o.baseOrigin()
	if base == "" {
		return ""
	}
	return base + EnsureLeadingSlash(candidate)
}

// resolveAsset is resolveURL for asset references: without an origin the
// raw value is kept.
func (o Options) resolveAsset(raw string) string {
	if raw == "" || IsAbsoluteURL(raw) {
		return raw
	}
	base := o.baseOrigin()
	if base == "" {
		return raw
	}
	return base + EnsureLeadingSlash(raw)
}
