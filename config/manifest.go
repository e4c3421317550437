package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	DefaultStudioName  = "WebEssex"
	DefaultDescription = "WebEssex is a design-led product and delivery studio delivering websites, product launches, and growth partnerships for ambitious teams."
)

// LoadManifest reads and normalizes a site manifest from disk.
func LoadManifest(filename string) (*SiteManifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", filename)
	}

	return ParseManifest(data)
}

// ParseManifest decodes manifest YAML, fills studio defaults and appends the
// base meta tags to every route after its own tags.
func ParseManifest(data []byte) (*SiteManifest, error) {
	var manifest SiteManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	if manifest.Studio.Name == "" {
		manifest.Studio.Name = DefaultStudioName
	}
	if manifest.Studio.DefaultDescription == "" {
		manifest.Studio.DefaultDescription = DefaultDescription
	}
	manifest.Origin = TrimOrigin(manifest.Origin)

	seen := make(map[string]bool, len(manifest.Routes))
	for i := range manifest.Routes {
		route := &manifest.Routes[i]
		if route.Path == "" {
			return nil, errors.Errorf("route %d has no path", i)
		}
		if seen[route.Path] {
			return nil, errors.Errorf("duplicate route path %s", route.Path)
		}
		seen[route.Path] = true

		if route.TemplateType == "" {
			route.TemplateType = TemplatePlush
		}
		if len(manifest.BaseMetaTags) > 0 {
			tags := make([]MetaTag, 0, len(route.Meta.MetaTags)+len(manifest.BaseMetaTags))
			tags = append(tags, route.Meta.MetaTags...)
			tags = append(tags, manifest.BaseMetaTags...)
			route.Meta.MetaTags = tags
		}
	}

	return &manifest, nil
}

// StaticRoutes returns the paths of every route without a dynamic segment,
// in table order.
func (m *SiteManifest) StaticRoutes() []string {
	var paths []string
	for _, route := range m.Routes {
		if !route.IsDynamic() {
			paths = append(paths, route.Path)
		}
	}
	return paths
}

// TrimOrigin trims whitespace and trailing slashes from an origin.
func TrimOrigin(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/")
}
