package app

import (
	"clubsite/internal/domain/config"
	"clubsite/internal/domain/content"
	"clubsite/internal/domain/site"
	"clubsite/internal/index"
	"clubsite/internal/render"
	"context"
	"fmt"
	"html/template"
	"strings"
)

const (
	homeLatest  = 3
	relatedMax  = 3
	homeProject = 3
)

// Site assembles page views from the index, the data catalog and the
// compiled post bodies.
type Site struct {
	Cfg       config.Config
	Index     *index.Store
	Catalog   content.Catalog
	Templates render.Renderer
	Bodies    map[string]render.MarkdownResult
	// LiveReload is set by the dev server.
	LiveReload bool
}

func (s *Site) base(title, active string) render.Base {
	return render.Base{
		Site:       s.Cfg.Site,
		Title:      site.PageTitle(s.Cfg.Site.Title, title),
		Active:     active,
		Generated:  s.Cfg.Build.Now,
		LiveReload: s.LiveReload,
	}
}

func (s *Site) listOptions() index.ListOptions {
	return index.ListOptions{IncludeDraft: s.Cfg.Build.IncludeDraft}
}

// Render produces the HTML for one route.
func (s *Site) Render(ctx context.Context, r site.Route) ([]byte, error) {
	switch r.Kind {
	case site.RouteHome:
		return s.renderHome(ctx)
	case site.RouteBlog:
		return s.renderBlog(ctx)
	case site.RoutePost:
		return s.renderPost(ctx, r.Key)
	case site.RouteTag, site.RouteCategory:
		return s.renderList(ctx, r)
	case site.RouteProjects:
		return s.Templates.RenderProjects(ctx, render.ProjectsPage{
			Base:   s.base("Projects", "projects"),
			Groups: content.GroupProjects(s.Catalog.Projects),
		})
	case site.RouteResources:
		return s.Templates.RenderResources(ctx, render.ResourcesPage{
			Base:   s.base("Resources", "resources"),
			Groups: s.Catalog.Resources,
		})
	case site.RouteAlias:
		return s.Templates.RenderRedirect(ctx, render.RedirectPage{
			Base:   s.base("Moved", ""),
			Target: site.WithBase(s.Cfg.Build.BasePath, r.Target),
		})
	case site.RouteNotFound:
		return s.Templates.RenderNotFound(ctx, render.NotFoundPage{
			Base: s.base("Not found", ""),
			Path: r.Key,
		})
	default:
		return nil, fmt.Errorf("unknown route kind %q", r.Kind)
	}
}

func (s *Site) renderHome(ctx context.Context) ([]byte, error) {
	opt := s.listOptions()
	opt.Size = homeLatest
	latest, err := s.Index.List(opt)
	if err != nil {
		return nil, err
	}
	upcoming, past := content.SplitEvents(s.Catalog.Events, s.Cfg.Build.Now)

	var featured []content.Project
	for _, p := range s.Catalog.Projects {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	if len(featured) == 0 {
		featured = s.Catalog.Projects
	}
	if len(featured) > homeProject {
		featured = featured[:homeProject]
	}

	return s.Templates.RenderHome(ctx, render.HomePage{
		Base:        s.base("", "home"),
		Upcoming:    upcoming,
		Past:        past,
		Faculty:     s.Catalog.Faculty,
		Members:     s.Catalog.Members,
		Initiatives: s.Catalog.Initiatives,
		Latest:      latest,
		Featured:    featured,
		Resources:   s.Catalog.Resources,
	})
}

func (s *Site) renderBlog(ctx context.Context) ([]byte, error) {
	posts, err := s.Index.List(s.listOptions())
	if err != nil {
		return nil, err
	}
	tags, err := s.Index.TagStats(s.Cfg.Build.IncludeDraft)
	if err != nil {
		return nil, err
	}
	cats, err := s.Index.CategoryStats(s.Cfg.Build.IncludeDraft)
	if err != nil {
		return nil, err
	}
	return s.Templates.RenderBlog(ctx, render.BlogPage{
		Base:       s.base("Blog", "blog"),
		Posts:      posts,
		Tags:       terms(tags),
		Categories: terms(cats),
	})
}

func terms(stats []index.TermStat) []render.Term {
	out := make([]render.Term, 0, len(stats))
	for _, st := range stats {
		out = append(out, render.Term{Key: st.Key, Name: st.Name, Count: st.Count})
	}
	return out
}

func (s *Site) renderPost(ctx context.Context, slug string) ([]byte, error) {
	meta, err := s.Index.GetMeta(slug)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", slug, err)
	}
	body, ok := s.Bodies[slug]
	if !ok {
		return nil, fmt.Errorf("post %s: body not compiled", slug)
	}

	all, err := s.Index.List(s.listOptions())
	if err != nil {
		return nil, err
	}
	page := render.PostPage{
		Base:    s.base(meta.Title, "blog"),
		Meta:    meta,
		HTML:    template.HTML(body.HTML),
		TOC:     body.TOC,
		IsDraft: meta.Draft,
	}
	// the list is newest first: Prev is the newer post, Next the older
	for i, m := range all {
		if m.Slug != slug {
			continue
		}
		if i > 0 {
			prev := all[i-1]
			page.Prev = &prev
		}
		if i+1 < len(all) {
			next := all[i+1]
			page.Next = &next
		}
		break
	}
	page.Related = related(meta, all)
	return s.Templates.RenderPost(ctx, page)
}

// related picks the newest posts sharing a tag with meta.
func related(meta content.PostMeta, all []content.PostMeta) []content.PostMeta {
	tags := make(map[string]struct{}, len(meta.Tags))
	for _, t := range meta.Tags {
		tags[content.TagKey(t)] = struct{}{}
	}
	var out []content.PostMeta
	for _, m := range all {
		if m.Slug == meta.Slug {
			continue
		}
		for _, t := range m.Tags {
			if _, ok := tags[content.TagKey(t)]; ok {
				out = append(out, m)
				break
			}
		}
		if len(out) == relatedMax {
			break
		}
	}
	return out
}

func (s *Site) renderList(ctx context.Context, r site.Route) ([]byte, error) {
	var (
		posts []content.PostMeta
		stats []index.TermStat
		err   error
		kind  render.ListKind
	)
	if r.Kind == site.RouteTag {
		kind = render.ListTag
		posts, err = s.Index.ListByTag(r.Key, s.listOptions())
		if err == nil {
			stats, err = s.Index.TagStats(s.Cfg.Build.IncludeDraft)
		}
	} else {
		kind = render.ListCategory
		posts, err = s.Index.ListByCategory(r.Key, s.listOptions())
		if err == nil {
			stats, err = s.Index.CategoryStats(s.Cfg.Build.IncludeDraft)
		}
	}
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, fmt.Errorf("%s %s: %w", kind, r.Key, index.ErrNotFound)
	}

	name := r.Key
	for _, st := range stats {
		if st.Key == r.Key {
			name = st.Name
			break
		}
	}
	title := name
	if kind == render.ListTag {
		title = "#" + strings.TrimPrefix(name, "#")
	}
	return s.Templates.RenderList(ctx, render.ListPage{
		Base:  s.base(title, "blog"),
		Kind:  kind,
		Name:  name,
		Posts: posts,
	})
}
