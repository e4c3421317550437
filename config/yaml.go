package config

// config/yaml.go

// Template types understood by the page handlers.
const (
	TemplatePlush    = "PLUSH"
	TemplateMarkdown = "MARKDOWN"
)

// Data loaders a route can request before its template runs.
const (
	LoaderBlogList   = "blog_list"
	LoaderBlogDetail = "blog_detail"
)

type JavascriptTarget struct {
	Source string `yaml:"source"`
	OutDir string `yaml:"out_dir"`
}

type Studio struct {
	Name               string `yaml:"name"`
	DefaultDescription string `yaml:"default_description"`
	ContactEmail       string `yaml:"contact_email"`
	SecurityEmail      string `yaml:"security_email"`
	Twitter            string `yaml:"twitter"`
}

type SiteManifest struct {
	Origin             string                      `yaml:"origin"`
	Studio             Studio                      `yaml:"studio"`
	BaseMetaTags       []MetaTag                   `yaml:"base_meta_tags"`
	Routes             []Route                     `yaml:"routes"`
	JavascriptTargets  map[string]JavascriptTarget `yaml:"javascript"`
	NotFoundPageSource string                      `yaml:"not_found_page_source"`
}

type Route struct {
	Path           string    `yaml:"path"`
	Name           string    `yaml:"name"`
	Source         string    `yaml:"source"`
	TemplateType   string    `yaml:"template_type"`
	Loader         string    `yaml:"loader"`
	JavascriptDeps []string  `yaml:"javascript_deps"`
	Meta           RouteMeta `yaml:"meta"`
}

// IsDynamic reports whether the route path carries a :param segment.
func (r Route) IsDynamic() bool {
	for i := 0; i < len(r.Path); i++ {
		if r.Path[i] == ':' && (i == 0 || r.Path[i-1] == '/') {
			return true
		}
	}
	return false
}

// RouteMeta is the statically authored head metadata of a route.
type RouteMeta struct {
	Title    string    `yaml:"title"`
	MetaTags []MetaTag `yaml:"meta_tags"`
	SEO      *SEO      `yaml:"seo"`
}

// MetaTag is one declared <meta> tag. Key overrides the dedupe key derived
// from Name, Property or Rel.
type MetaTag struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Property string `yaml:"property"`
	Rel      string `yaml:"rel"`
	Content  string `yaml:"content"`
}

type SEO struct {
	Keywords           Keywords `yaml:"keywords"`
	Canonical          string   `yaml:"canonical"`
	OGTitle            string   `yaml:"og_title"`
	OGDescription      string   `yaml:"og_description"`
	OGImage            string   `yaml:"og_image"`
	OGType             string   `yaml:"og_type"`
	TwitterTitle       string   `yaml:"twitter_title"`
	TwitterDescription string   `yaml:"twitter_description"`
	TwitterImage       string   `yaml:"twitter_image"`
	TwitterCard        string   `yaml:"twitter_card"`
}

// Keywords accepts either a single string or a list in YAML.
type Keywords []string

func (k *Keywords) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*k = list
		return nil
	}

	var single string
	if err := unmarshal(&single); err != nil {
		return err
	}
	if single == "" {
		*k = nil
		return nil
	}
	*k = Keywords{single}
	return nil
}
