package render

import (
	"clubsite/internal/domain/config"
	"clubsite/internal/domain/content"
	"html/template"
	"time"
)

// Base is embedded in every page. Active names the nav entry to
// highlight.
type Base struct {
	Site      config.SiteConfig
	Title     string
	Active    string
	Generated time.Time
	// LiveReload adds the dev server's reload hook.
	LiveReload bool
}

// Term is a tag or category with its post count.
type Term struct {
	Key   string
	Name  string
	Count int
}

type HomePage struct {
	Base
	Upcoming    []content.Event
	Past        []content.Event
	Faculty     []content.Faculty
	Members     []content.Member
	Initiatives []content.Initiative
	Latest      []content.PostMeta
	Featured    []content.Project
	Resources   []content.ResourceGroup
}

type BlogPage struct {
	Base
	Posts      []content.PostMeta
	Tags       []Term
	Categories []Term
}

type PostPage struct {
	Base
	Meta    content.PostMeta
	HTML    template.HTML
	TOC     []content.Heading
	Prev    *content.PostMeta
	Next    *content.PostMeta
	Related []content.PostMeta
	IsDraft bool
}

type ListKind string

const (
	ListTag      ListKind = "tag"
	ListCategory ListKind = "category"
)

type ListPage struct {
	Base
	Kind  ListKind
	Name  string
	Posts []content.PostMeta
}

type ProjectsPage struct {
	Base
	Groups []content.ProjectGroup
}

type ResourcesPage struct {
	Base
	Groups []content.ResourceGroup
}

type NotFoundPage struct {
	Base
	Path string
}

// RedirectPage is the stub written at an alias URL.
type RedirectPage struct {
	Base
	Target string
}
