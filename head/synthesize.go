// Package head builds the document head for a route and keeps exactly one
// head registration alive across navigations.
package head

import (
	"strings"

	"github.com/webessex/site/config"
	"github.com/webessex/site/router"
)

const (
	defaultOGType      = "website"
	defaultTwitterCard = "summary_large_image"
)

// accumulator collects entries in insertion order. The first entry written
// for a key wins; later writers are ignored. Entries without a key are
// always kept.
type accumulator struct {
	meta     []Entry
	link     []Entry
	metaKeys map[string]bool
	linkKeys map[string]bool
}

func newAccumulator() *accumulator {
	return &accumulator{
		metaKeys: make(map[string]bool),
		linkKeys: make(map[string]bool),
	}
}

func (a *accumulator) addMeta(key string, attrs ...Attr) {
	if key == "" {
		key = firstAttr(attrs, "name", "property", "rel")
	}
	if key != "" {
		if a.metaKeys[key] {
			return
		}
		a.metaKeys[key] = true
	}
	a.meta = append(a.meta, Entry{Key: key, Attrs: attrs})
}

func (a *accumulator) addLink(key string, attrs ...Attr) {
	if key == "" {
		key = firstAttr(attrs, "rel", "href")
	}
	if key != "" {
		if a.linkKeys[key] {
			return
		}
		a.linkKeys[key] = true
	}
	a.link = append(a.link, Entry{Key: key, Attrs: attrs})
}

func firstAttr(attrs []Attr, names ...string) string {
	for _, name := range names {
		for _, a := range attrs {
			if a.Name == name && a.Value != "" {
				return a.Value
			}
		}
	}
	return ""
}

func metaTagAttrs(tag config.MetaTag) []Attr {
	var attrs []Attr
	if tag.Name != "" {
		attrs = append(attrs, Attr{Name: "name", Value: tag.Name})
	}
	if tag.Property != "" {
		attrs = append(attrs, Attr{Name: "property", Value: tag.Property})
	}
	if tag.Rel != "" {
		attrs = append(attrs, Attr{Name: "rel", Value: tag.Rel})
	}
	attrs = append(attrs, Attr{Name: "content", Value: tag.Content})
	return attrs
}

// normalizeSEO fills SEO defaults. fallbackDescription is already resolved
// from the explicit og description, the route description or the studio
// default.
func normalizeSEO(raw config.SEO, title, fallbackDescription string) config.SEO {
	seo := raw
	if seo.OGTitle == "" {
		seo.OGTitle = title
	}
	if seo.OGDescription == "" {
		seo.OGDescription = fallbackDescription
	}
	if seo.OGType == "" {
		seo.OGType = defaultOGType
	}
	if seo.TwitterTitle == "" {
		seo.TwitterTitle = firstNonEmpty(raw.OGTitle, title)
	}
	if seo.TwitterDescription == "" {
		seo.TwitterDescription = firstNonEmpty(raw.OGDescription, fallbackDescription)
	}
	if seo.TwitterCard == "" {
		seo.TwitterCard = defaultTwitterCard
	}
	if seo.TwitterImage == "" {
		seo.TwitterImage = raw.OGImage
	}
	return seo
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// BuildFromRoute computes the head for loc. It never fails: URLs that cannot
// be resolved are left out.
func BuildFromRoute(loc router.Location, opts Options) Payload {
	studio := firstNonEmpty(opts.StudioName, config.DefaultStudioName)
	defaultDescription := firstNonEmpty(opts.DefaultDescription, config.DefaultDescription)

	title := firstNonEmpty(loc.Meta.Title, studio)
	payload := Payload{Title: title}
	acc := newAccumulator()

	var metaDescription string
	for _, tag := range loc.Meta.MetaTags {
		if tag.Name == "description" && tag.Content != "" {
			metaDescription = tag.Content
		}
		acc.addMeta(tag.Key, metaTagAttrs(tag)...)
	}

	var raw config.SEO
	if loc.Meta.SEO != nil {
		raw = *loc.Meta.SEO
	}
	fallbackDescription := firstNonEmpty(raw.OGDescription, metaDescription, defaultDescription)
	seo := normalizeSEO(raw, title, fallbackDescription)

	if canonical := opts.resolveURL(seo.Canonical, loc.Path); canonical != "" {
		acc.addLink("canonical", Attr{Name: "rel", Value: "canonical"}, Attr{Name: "href", Value: canonical})
		acc.addMeta("og:url", Attr{Name: "property", Value: "og:url"}, Attr{Name: "content", Value: canonical})
	}

	if keywords := strings.Join(seo.Keywords, ", "); keywords != "" {
		acc.addMeta("keywords", Attr{Name: "name", Value: "keywords"}, Attr{Name: "content", Value: keywords})
	}

	for _, field := range seoFields {
		content := field.value(seo)
		if content == "" {
			continue
		}
		if field.IsImage() {
			content = opts.resolveAsset(content)
		}
		acc.addMeta(field.Tag(),
			Attr{Name: field.Attribute(), Value: field.Tag()},
			Attr{Name: "content", Value: content},
		)
	}

	if !acc.metaKeys["description"] {
		acc.addMeta("description", Attr{Name: "name", Value: "description"}, Attr{Name: "content", Value: fallbackDescription})
	}

	acc.addMeta("og:site_name", Attr{Name: "property", Value: "og:site_name"}, Attr{Name: "content", Value: studio})

	if len(acc.meta) > 0 {
		payload.Meta = acc.meta
	}
	if len(acc.link) > 0 {
		payload.Link = acc.link
	}
	return payload
}
