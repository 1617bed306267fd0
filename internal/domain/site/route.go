package site

import (
	"fmt"
	"path"
	"strings"
)

type RouteKind string

const (
	RouteHome      RouteKind = "home"
	RouteBlog      RouteKind = "blog"
	RoutePost      RouteKind = "post"
	RouteTag       RouteKind = "tag"
	RouteCategory  RouteKind = "category"
	RouteProjects  RouteKind = "projects"
	RouteResources RouteKind = "resources"
	RouteAlias     RouteKind = "alias"
	RouteNotFound  RouteKind = "404"
)

// Route is one output page. URL is the site-relative path a browser asks
// for; OutPath is where the static build writes it.
type Route struct {
	Kind    RouteKind
	Key     string
	Target  string
	URL     string
	OutPath string
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Key != "" {
		parts = append(parts, "key="+r.Key)
	}
	if r.Target != "" {
		parts = append(parts, "target="+r.Target)
	}
	if r.URL != "" {
		parts = append(parts, "url="+r.URL)
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	return strings.Join(parts, " ")
}

func HomeURL() string      { return "/" }
func BlogURL() string      { return "/blog/" }
func ProjectsURL() string  { return "/projects/" }
func ResourcesURL() string { return "/resources/" }

func PostURL(slug string) string {
	return "/blog/" + slug + "/"
}

func TagURL(tag string) string {
	return "/blog/tags/" + PathSegment(tag) + "/"
}

func CategoryURL(cat string) string {
	return "/blog/categories/" + PathSegment(cat) + "/"
}

// OutPathFor maps a directory-style URL to its index.html file.
func OutPathFor(url string) string {
	p := strings.Trim(url, "/")
	if p == "" {
		return "index.html"
	}
	return path.Join(p, "index.html")
}

// WithBase prefixes a site-relative URL with the configured base path.
func WithBase(base, url string) string {
	base = strings.TrimSuffix(strings.TrimSpace(base), "/")
	if base == "" {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		return url
	}
	return base + url
}

// PathSegment makes s safe as a single URL path segment: lower case,
// anything outside [a-z0-9_-] becomes '-'.
func PathSegment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "untitled"
	}
	repl := func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}
	return strings.Map(repl, s)
}

func PageTitle(siteTitle, page string) string {
	if page == "" {
		return siteTitle
	}
	return fmt.Sprintf("%s | %s", page, siteTitle)
}
