package app

import (
	"clubsite/internal/domain/content"
	"clubsite/internal/domain/site"
	"clubsite/internal/index"
	"sort"
)

type RouteBuilder struct {
	Index        *index.Store
	IncludeDraft bool
}

func staticRoute(kind site.RouteKind, url string) site.Route {
	return site.Route{Kind: kind, URL: url, OutPath: site.OutPathFor(url)}
}

func (rb *RouteBuilder) BuildPageRoutes() []site.Route {
	return []site.Route{
		staticRoute(site.RouteHome, site.HomeURL()),
		staticRoute(site.RouteBlog, site.BlogURL()),
		staticRoute(site.RouteProjects, site.ProjectsURL()),
		staticRoute(site.RouteResources, site.ResourcesURL()),
		{Kind: site.RouteNotFound, URL: "/404.html", OutPath: "404.html"},
	}
}

func (rb *RouteBuilder) BuildPostRoutes(posts []content.PostMeta) []site.Route {
	var routes []site.Route
	for _, m := range posts {
		url := site.PostURL(m.Slug)
		routes = append(routes, site.Route{
			Kind:    site.RoutePost,
			Key:     m.Slug,
			URL:     url,
			OutPath: site.OutPathFor(url),
		})
	}
	return routes
}

func (rb *RouteBuilder) BuildTagRoutes() ([]site.Route, error) {
	stats, err := rb.Index.TagStats(rb.IncludeDraft)
	if err != nil {
		return nil, err
	}
	var routes []site.Route
	for _, st := range stats {
		url := site.TagURL(st.Key)
		routes = append(routes, site.Route{Kind: site.RouteTag, Key: st.Key, URL: url, OutPath: site.OutPathFor(url)})
	}
	return routes, nil
}

func (rb *RouteBuilder) BuildCategoryRoutes() ([]site.Route, error) {
	stats, err := rb.Index.CategoryStats(rb.IncludeDraft)
	if err != nil {
		return nil, err
	}
	var routes []site.Route
	for _, st := range stats {
		url := site.CategoryURL(st.Key)
		routes = append(routes, site.Route{Kind: site.RouteCategory, Key: st.Key, URL: url, OutPath: site.OutPathFor(url)})
	}
	return routes, nil
}

// BuildAliasRoutes writes a redirect stub at /blog/<alias>/ for every
// alias. Aliases are sorted so output order is stable.
func (rb *RouteBuilder) BuildAliasRoutes() ([]site.Route, error) {
	aliases, err := rb.Index.Aliases()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var routes []site.Route
	for _, old := range keys {
		url := site.PostURL(old)
		routes = append(routes, site.Route{
			Kind:    site.RouteAlias,
			Key:     old,
			Target:  site.PostURL(aliases[old]),
			URL:     url,
			OutPath: site.OutPathFor(url),
		})
	}
	return routes, nil
}

// All returns every route of the site.
func (rb *RouteBuilder) All() ([]site.Route, error) {
	posts, err := rb.Index.List(index.ListOptions{IncludeDraft: rb.IncludeDraft})
	if err != nil {
		return nil, err
	}
	routes := rb.BuildPageRoutes()
	routes = append(routes, rb.BuildPostRoutes(posts)...)

	for _, fn := range []func() ([]site.Route, error){rb.BuildTagRoutes, rb.BuildCategoryRoutes, rb.BuildAliasRoutes} {
		more, err := fn()
		if err != nil {
			return nil, err
		}
		routes = append(routes, more...)
	}
	return routes, nil
}
