package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gobuffalo/plush"
	"github.com/microcosm-cc/bluemonday"

	"github.com/webessex/site/blogapi"
	"github.com/webessex/site/logfields"
)

const blogPageSize = 12

var bodyPolicy = bluemonday.UGCPolicy()

type postCard struct {
	Title       string
	Slug        string
	Excerpt     string
	ReadingTime int
}

type postView struct {
	Title       string
	Author      string
	ReadingTime int
	Body        template.HTML
}

// loadBlogList puts the current listing page into ctx. Content API
// failures render an empty listing.
func (s *Site) loadBlogList(r *http.Request, ctx *plush.Context) {
	posts := []postCard{}
	defer func() {
		ctx.Set("posts", posts)
		ctx.Set("hasPosts", len(posts) > 0)
	}()

	if s.opts.Blog == nil {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	res, err := s.opts.Blog.ListPosts(r.Context(), blogapi.ListOptions{
		Category: r.URL.Query().Get("category"),
		Page:     page,
		PageSize: blogPageSize,
	})
	if err != nil {
		s.opts.Logger.Warn("Listing blog posts failed", logfields.Path(r.URL.Path), logfields.Error(err))
		return
	}

	for _, p := range res.Results {
		posts = append(posts, postCard{
			Title:       p.Title,
			Slug:        p.Slug,
			Excerpt:     p.Excerpt,
			ReadingTime: p.ReadingTimeMinutes,
		})
	}
}

// loadBlogDetail puts the post for slug into ctx. It returns 404 when the
// post does not exist or no content API is configured.
func (s *Site) loadBlogDetail(r *http.Request, ctx *plush.Context, slug string) (int, error) {
	if s.opts.Blog == nil || slug == "" {
		return http.StatusNotFound, nil
	}

	post, err := s.opts.Blog.GetPost(r.Context(), slug)
	if err != nil {
		if blogapi.IsNotFound(err) {
			return http.StatusNotFound, err
		}
		s.opts.Logger.Error("Fetching blog post failed", logfields.Slug(slug), logfields.Error(err))
		return http.StatusBadGateway, err
	}

	view := postView{
		Title:       post.Title,
		ReadingTime: post.ReadingTimeMinutes,
		Body:        template.HTML(bodyPolicy.Sanitize(post.Body)),
	}
	if post.Author != nil {
		view.Author = post.Author.FullName
	}
	ctx.Set("post", view)
	return http.StatusOK, nil
}
