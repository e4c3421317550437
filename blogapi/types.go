package blogapi

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Author struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	Role      string `json:"role,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// PostSEO is the per-post SEO block the API computes.
type PostSEO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Canonical   string   `json:"canonical"`
	OGImage     string   `json:"ogImage,omitempty"`
}

type PostListItem struct {
	ID                 int        `json:"id"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	Excerpt            string     `json:"excerpt"`
	HeroImageURL       string     `json:"hero_image_url,omitempty"`
	ReadingTimeMinutes int        `json:"reading_time_minutes"`
	PublishedAt        string     `json:"published_at"`
	Author             *Author    `json:"author"`
	Categories         []Category `json:"categories"`
	SEO                PostSEO    `json:"seo"`
}

type PostDetail struct {
	PostListItem
	Body         string         `json:"body"`
	CanonicalURL string         `json:"canonical_url"`
	RelatedPosts []PostListItem `json:"related_posts"`
}

type PaginatedPosts struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []PostListItem `json:"results"`
}

// ListOptions filters a post listing. Zero values are not sent.
type ListOptions struct {
	Category string
	Page     int
	PageSize int
}
