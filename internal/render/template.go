package render

import (
	"bytes"
	"clubsite/internal/domain/site"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type TemplateOptions struct {
	ThemeDir string
	Theme    string
	BasePath string
	// Language is a BCP 47 tag used for title casing.
	Language string
	// Now anchors relative dates so a build is reproducible.
	Now time.Time
}

type TemplateRenderer struct {
	tpl *template.Template
}

func NewTemplateRenderer(opt TemplateOptions) (*TemplateRenderer, error) {
	pattern := filepath.Join(opt.ThemeDir, opt.Theme, "templates", "*.tmpl")
	tpl, err := template.New("").Funcs(templateFuncs(opt)).ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", opt.Theme, err)
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

func templateFuncs(opt TemplateOptions) template.FuncMap {
	tag, err := language.Parse(opt.Language)
	if err != nil {
		tag = language.English
	}
	now := opt.Now
	if now.IsZero() {
		now = time.Now()
	}
	withBase := func(u string) string { return site.WithBase(opt.BasePath, u) }

	return template.FuncMap{
		"date": func(t time.Time, layout string) string {
			if t.IsZero() {
				return ""
			}
			return t.Format(layout)
		},
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.RelTime(t, now, "ago", "from now")
		},
		"title": func(s string) string {
			// a Caser keeps state, so each call gets its own
			return cases.Title(tag).String(s)
		},
		"url":         withBase,
		"postURL":     func(slug string) string { return withBase(site.PostURL(slug)) },
		"tagURL":      func(tag string) string { return withBase(site.TagURL(tag)) },
		"categoryURL": func(cat string) string { return withBase(site.CategoryURL(cat)) },
		"join":        strings.Join,
		"add":         func(a, b int) int { return a + b },
		"year":        func() int { return now.Year() },
	}
}

func (r *TemplateRenderer) RenderHome(ctx context.Context, page HomePage) ([]byte, error) {
	return r.exec(ctx, "home.tmpl", page)
}

func (r *TemplateRenderer) RenderBlog(ctx context.Context, page BlogPage) ([]byte, error) {
	return r.exec(ctx, "blog.tmpl", page)
}

func (r *TemplateRenderer) RenderPost(ctx context.Context, page PostPage) ([]byte, error) {
	return r.exec(ctx, "post.tmpl", page)
}

func (r *TemplateRenderer) RenderList(ctx context.Context, page ListPage) ([]byte, error) {
	return r.exec(ctx, "list.tmpl", page)
}

func (r *TemplateRenderer) RenderProjects(ctx context.Context, page ProjectsPage) ([]byte, error) {
	return r.exec(ctx, "projects.tmpl", page)
}

func (r *TemplateRenderer) RenderResources(ctx context.Context, page ResourcesPage) ([]byte, error) {
	return r.exec(ctx, "resources.tmpl", page)
}

func (r *TemplateRenderer) RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error) {
	return r.exec(ctx, "404.tmpl", page)
}

func (r *TemplateRenderer) RenderRedirect(ctx context.Context, page RedirectPage) ([]byte, error) {
	return r.exec(ctx, "redirect.tmpl", page)
}

func (r *TemplateRenderer) exec(ctx context.Context, name string, data interface{}) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RequiredTemplates are the files every theme must provide.
var RequiredTemplates = []string{
	"layout.tmpl",
	"home.tmpl",
	"blog.tmpl",
	"post.tmpl",
	"list.tmpl",
	"projects.tmpl",
	"resources.tmpl",
	"404.tmpl",
	"redirect.tmpl",
}

// CheckThemeTemplates reports every required template missing from dir.
func CheckThemeTemplates(dir string) error {
	var missing []string
	for _, name := range RequiredTemplates {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing templates in %s: %s", dir, strings.Join(missing, ", "))
	}
	return nil
}
