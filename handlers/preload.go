package handlers

import (
	"regexp"
	"strings"
)

var stylesheetLink = regexp.MustCompile(`<link rel="stylesheet"([^>]*href="[^"]+"[^>]*)>`)

// InjectPreloadLinks puts a rel="preload" twin in front of every stylesheet
// link that does not already have one.
func InjectPreloadLinks(html string) string {
	return stylesheetLink.ReplaceAllStringFunc(html, func(match string) string {
		attrs := stylesheetLink.FindStringSubmatch(match)[1]
		preload := `<link rel="preload"` + attrs + ` as="style">`
		if strings.Contains(html, preload) {
			return match
		}
		return preload + "\n" + match
	})
}
