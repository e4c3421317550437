// Package router matches request paths against the site route table and
// drives the navigation lifecycle that head management hooks into.
package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/webessex/site/config"
)

// ErrNoRoute is returned when a path matches no route in the table.
var ErrNoRoute = errors.New("no route matches path")

// Location is a matched route: the concrete path plus the route's static
// metadata and any dynamic segment values.
type Location struct {
	Path   string
	Name   string
	Params map[string]string
	Meta   config.RouteMeta
}

// Hook runs after a navigation completes.
type Hook func(to, from Location)

// Router resolves paths and notifies hooks on navigation. Navigations are
// sequential; a Router must not be shared between goroutines.
type Router struct {
	mux     *mux.Router
	routes  map[*mux.Route]config.Route
	current Location
	hooks   []*Hook
}

func New(routes []config.Route) *Router {
	r := &Router{
		mux:    mux.NewRouter(),
		routes: make(map[*mux.Route]config.Route, len(routes)),
	}
	for _, route := range routes {
		mr := r.mux.NewRoute().Path(MuxPath(route.Path))
		if route.Name != "" {
			mr.Name(route.Name)
		}
		r.routes[mr] = route
	}
	return r
}

// Resolve matches path against the table, first match wins.
func (r *Router) Resolve(path string) (Location, bool) {
	path = normalizePath(path)

	var match mux.RouteMatch
	if !r.mux.Match(&http.Request{Method: http.MethodGet, URL: &url.URL{Path: path}}, &match) {
		return Location{}, false
	}
	route, ok := r.routes[match.Route]
	if !ok {
		return Location{}, false
	}

	var params map[string]string
	if len(match.Vars) > 0 {
		params = match.Vars
	}
	return Location{
		Path:   path,
		Name:   route.Name,
		Params: params,
		Meta:   route.Meta,
	}, true
}

// Push navigates to path, then runs every AfterEach hook in registration
// order before returning.
func (r *Router) Push(path string) error {
	to, ok := r.Resolve(path)
	if !ok {
		return errors.Wrapf(ErrNoRoute, "push %s", path)
	}

	from := r.current
	r.current = to
	for _, hook := range r.hooks {
		if hook != nil {
			(*hook)(to, from)
		}
	}
	return nil
}

// CurrentRoute returns the location of the last successful navigation.
func (r *Router) CurrentRoute() Location {
	return r.current
}

// AfterEach registers fn to run after every navigation. The returned func
// removes it.
func (r *Router) AfterEach(fn Hook) (remove func()) {
	h := &fn
	r.hooks = append(r.hooks, h)
	return func() {
		for i, existing := range r.hooks {
			if existing == h {
				r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
				return
			}
		}
	}
}

// MuxPath turns ":param" segments into mux "{param}" variables.
func MuxPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
