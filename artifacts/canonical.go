package artifacts

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// ErrNoCanonical is returned when a document has no usable canonical link.
var ErrNoCanonical = errors.New("no canonical link")

// HTMLFileForRoute maps a route to its rendered document under outDir:
// "/" is index.html, anything else drops one trailing slash and gains
// ".html".
func HTMLFileForRoute(outDir, route string) string {
	if route == "/" || route == "" {
		return filepath.Join(outDir, "index.html")
	}
	normalized := strings.TrimSuffix(route, "/") + ".html"
	return filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(normalized, "/")))
}

// ReadCanonical extracts the canonical href from the document at path.
func ReadCanonical(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ExtractCanonical(f)
}

// ExtractCanonical returns the href of the first <link> whose rel contains
// the "canonical" token.
func ExtractCanonical(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", errors.Wrap(err, "parsing document")
	}

	var find func(*html.Node) string
	find = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.Data == "link" && hasRelToken(n, "canonical") {
			if href := strings.TrimSpace(attr(n, "href")); href != "" {
				return href
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if href := find(c); href != "" {
				return href
			}
		}
		return ""
	}

	if href := find(doc); href != "" {
		return href, nil
	}
	return "", ErrNoCanonical
}

func hasRelToken(n *html.Node, token string) bool {
	for _, field := range strings.Fields(attr(n, "rel")) {
		if strings.EqualFold(field, token) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
