package artifacts

import (
	"encoding/xml"
	"sort"
	"strings"
	"time"
)

const (
	SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

	ChangeFreqWeekly = "weekly"
	PriorityRoot     = "1.0"
	PriorityPage     = "0.8"

	// lastModLayout matches the millisecond ISO-8601 form crawlers expect.
	lastModLayout = "2006-01-02T15:04:05.000Z"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// sitemapBuilder dedupes URLs by location; the first writer wins.
type sitemapBuilder struct {
	origin  string
	lastMod string
	urls    map[string]Url
}

func newSitemapBuilder(origin string, now time.Time) *sitemapBuilder {
	return &sitemapBuilder{
		origin:  strings.TrimRight(origin, "/"),
		lastMod: now.UTC().Format(lastModLayout),
		urls:    make(map[string]Url),
	}
}

func (b *sitemapBuilder) add(loc string) {
	if loc == "" {
		return
	}
	if _, ok := b.urls[loc]; ok {
		return
	}
	b.urls[loc] = Url{
		Loc:        loc,
		LastMod:    b.lastMod,
		ChangeFreq: ChangeFreqWeekly,
		Priority:   priorityFor(loc, b.origin),
	}
}

func (b *sitemapBuilder) sitemap() Sitemap {
	sm := Sitemap{Xmlns: SitemapNamespace, Urls: make([]Url, 0, len(b.urls))}
	for _, u := range b.urls {
		sm.Urls = append(sm.Urls, u)
	}
	sort.Slice(sm.Urls, func(i, j int) bool { return sm.Urls[i].Loc < sm.Urls[j].Loc })
	return sm
}

func priorityFor(loc, origin string) string {
	if loc == origin || loc == origin+"/" {
		return PriorityRoot
	}
	return PriorityPage
}

// BuildSitemap returns a sitemap over the given absolute URLs.
func BuildSitemap(origin string, urls []string, now time.Time) Sitemap {
	b := newSitemapBuilder(origin, now)
	for _, u := range urls {
		b.add(u)
	}
	return b.sitemap()
}

// MarshalSitemap renders sm as an XML document with header and trailing
// newline.
func MarshalSitemap(sm Sitemap) ([]byte, error) {
	body, err := xml.MarshalIndent(sm, "", "  ")
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
