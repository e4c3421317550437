package artifacts

import (
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var sitemapDirective = regexp.MustCompile(`(?im)^[ \t]*Sitemap:[^\n]*`)

const defaultRobots = "User-agent: *\nAllow: /"

// UpdateRobots strips every Sitemap directive from existing and appends one
// line per sitemap URL. An empty result falls back to allowing all crawlers.
func UpdateRobots(existing string, sitemaps []string) string {
	cleaned := strings.TrimSpace(sitemapDirective.ReplaceAllString(existing, ""))
	cleaned = collapseBlankLines(cleaned)
	if cleaned == "" {
		cleaned = defaultRobots
	}

	var b strings.Builder
	b.WriteString(cleaned)
	b.WriteString("\n\n")
	for _, sm := range sitemaps {
		b.WriteString("Sitemap: ")
		b.WriteString(sm)
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String()) + "\n"
}

// collapseBlankLines squeezes runs of empty lines left behind by removed
// directives into one.
func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// readOptional returns the file contents, or "" when it does not exist.
func readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(data), nil
}
