package head

import "github.com/webessex/site/config"

// SEOField is one of the recognized social-preview fields of a route.
type SEOField int

const (
	OGTitle SEOField = iota
	OGDescription
	OGImage
	OGType
	TwitterTitle
	TwitterDescription
	TwitterImage
	TwitterCard
)

// seoFields lists every SEOField in emission order.
var seoFields = [...]SEOField{
	OGTitle,
	OGDescription,
	OGImage,
	OGType,
	TwitterTitle,
	TwitterDescription,
	TwitterImage,
	TwitterCard,
}

// Attribute is the tag attribute carrying the field name: "property" for
// Open Graph, "name" for Twitter.
func (f SEOField) Attribute() string {
	switch f {
	case OGTitle, OGDescription, OGImage, OGType:
		return "property"
	default:
		return "name"
	}
}

// Tag is the meta tag name the field is emitted under.
func (f SEOField) Tag() string {
	switch f {
	case OGTitle:
		return "og:title"
	case OGDescription:
		return "og:description"
	case OGImage:
		return "og:image"
	case OGType:
		return "og:type"
	case TwitterTitle:
		return "twitter:title"
	case TwitterDescription:
		return "twitter:description"
	case TwitterImage:
		return "twitter:image"
	case TwitterCard:
		return "twitter:card"
	}
	return ""
}

// IsImage reports whether the field value is a URL that must be absolute.
func (f SEOField) IsImage() bool {
	return f == OGImage || f == TwitterImage
}

func (f SEOField) value(seo config.SEO) string {
	switch f {
	case OGTitle:
		return seo.OGTitle
	case OGDescription:
		return seo.OGDescription
	case OGImage:
		return seo.OGImage
	case OGType:
		return seo.OGType
	case TwitterTitle:
		return seo.TwitterTitle
	case TwitterDescription:
		return seo.TwitterDescription
	case TwitterImage:
		return seo.TwitterImage
	case TwitterCard:
		return seo.TwitterCard
	}
	return ""
}
