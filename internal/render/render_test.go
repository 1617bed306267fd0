package render

import (
	"bytes"
	"clubsite/internal/domain/config"
	"clubsite/internal/domain/content"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "## Setup Guide\nSome **bold** text.\n\n```go\nfmt.Println(1)\n```\n### Step one\n- a\n- b\n#### Deep\n"

func TestDialectRenderer(t *testing.T) {
	r, err := NewMarkdownRenderer(config.MarkdownDialect)
	require.NoError(t, err)
	assert.Equal(t, "dialect/1", r.Name())

	res, err := r.Render([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, []content.Heading{
		{Level: 2, ID: "setup-guide", Text: "Setup Guide"},
		{Level: 3, ID: "step-one", Text: "Step one"},
	}, res.TOC)
	assert.Contains(t, string(res.HTML), `<h2 id="setup-guide" class="bp-h2">`)
	assert.Empty(t, res.Issues)
	// Setup Guide / Some bold text. / Step one / a b / Deep
	assert.Equal(t, 10, res.Words)
}

func TestDialectRendererReportsIssues(t *testing.T) {
	res, err := DialectRenderer{}.Render([]byte("| a | b |\n|---|---|\n| 1 |\n\n```\nopen"))
	require.NoError(t, err)
	require.Len(t, res.Issues, 2)
	assert.Contains(t, res.Issues[0], "table rows")
	assert.Contains(t, res.Issues[1], "code fence never closed")
}

func TestGFMRenderer(t *testing.T) {
	r, err := NewMarkdownRenderer(config.MarkdownGFM)
	require.NoError(t, err)
	assert.Equal(t, "gfm/1", r.Name())

	res, err := r.Render([]byte("# Title\n\n## Why *MCP*\n\ntext ~~old~~\n\n### How\n"))
	require.NoError(t, err)
	require.Len(t, res.TOC, 2)
	assert.Equal(t, content.Heading{Level: 2, ID: "why-mcp", Text: "Why MCP"}, res.TOC[0])
	assert.Equal(t, 3, res.TOC[1].Level)
	assert.Contains(t, string(res.HTML), "<del>old</del>")
}

func TestUnknownMarkdownMode(t *testing.T) {
	_, err := NewMarkdownRenderer("rst")
	assert.Error(t, err)
}

func TestCountWords(t *testing.T) {
	n, err := CountWords([]byte(`<p>one two</p><ul><li>three</li><li>four</li></ul><pre><code>skip me</code></pre>`))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = CountWords(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func newTheme(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer(TemplateOptions{
		ThemeDir: filepath.Join("..", "..", "themes"),
		Theme:    "default",
		BasePath: "/Applied-AI-Club",
		Language: "en-US",
		Now:      time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return r
}

func parse(t *testing.T, b []byte) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	require.NoError(t, err)
	return doc
}

func base(title string) Base {
	return Base{Site: config.SiteConfig{Title: "Applied AI Club", Language: "en-US"}, Title: title}
}

func TestRenderPost(t *testing.T) {
	r := newTheme(t)
	meta := content.PostMeta{
		Title:    "A2A vs MCP",
		Slug:     "a2a-vs-mcp",
		Category: "DEEP DIVE",
		Tags:     []string{"MCP"},
		Date:     time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC),
	}
	out, err := r.RenderPost(context.Background(), PostPage{
		Base: base("A2A vs MCP | Applied AI Club"),
		Meta: meta,
		HTML: template.HTML(`<h2 id="why" class="bp-h2">Why</h2>`),
		TOC:  []content.Heading{{Level: 2, ID: "why", Text: "Why"}},
	})
	require.NoError(t, err)

	doc := parse(t, out)
	assert.Equal(t, "A2A vs MCP | Applied AI Club", doc.Find("title").Text())
	assert.Equal(t, "A2A vs MCP", doc.Find("h1.bp__title").Text())
	href, _ := doc.Find(".bp__toc a").Attr("href")
	assert.Equal(t, "#why", href)
	cat, _ := doc.Find("a.bp__category").Attr("href")
	assert.Equal(t, "/Applied-AI-Club/blog/categories/deep-dive/", cat)
	tag, _ := doc.Find(".bp__tags a").Attr("href")
	assert.Equal(t, "/Applied-AI-Club/blog/tags/mcp/", tag)
	assert.Equal(t, 1, doc.Find(".bp__body h2#why").Length())
	assert.Contains(t, doc.Find(".bp__meta").Text(), "1 min read")
}

func TestRenderHome(t *testing.T) {
	r := newTheme(t)
	now := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	up, past := content.SplitEvents([]content.Event{
		{Title: "Workshop", When: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{Title: "Kickoff", When: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)},
	}, now)
	out, err := r.RenderHome(context.Background(), HomePage{
		Base:      base("Applied AI Club"),
		Upcoming:  up,
		Past:      past,
		Featured:  []content.Project{{Name: "Agent Flow", Status: "Live"}},
		Resources: []content.ResourceGroup{{Title: "university links", Links: []content.ResourceLink{{Name: "PNW", URL: "https://www.pnw.edu"}}}},
	})
	require.NoError(t, err)

	doc := parse(t, out)
	assert.Equal(t, "Workshop", doc.Find(".event-card--upcoming h3").Text())
	assert.Equal(t, "2 weeks ago", doc.Find(".event-card__ago").Text())
	assert.Equal(t, "AGENT_FLOW", doc.Find(".project-card.accent-green .project-card__codename").Text())
	assert.Equal(t, "University Links", doc.Find(".resource-group h3").Text())
	target, _ := doc.Find(".resource-group a").Attr("target")
	assert.Equal(t, "_blank", target)
	assert.Greater(t, doc.Find("[data-reveal]").Length(), 2)
}

func TestRenderHomeTeamAndInitiatives(t *testing.T) {
	r := newTheme(t)
	out, err := r.RenderHome(context.Background(), HomePage{
		Base: base("Applied AI Club"),
		Members: []content.Member{
			{Name: "Basil Ebinesar", Role: "President", Image: "/static/team/basil.jpg"},
			{Name: "Kranthi Gadi", Role: "Tech Lead"},
		},
		Initiatives: []content.Initiative{
			{Title: "Healthcare AI & Diagnostics", Description: "Clinical NLP.", Tags: []string{"Healthcare", "NLP"}},
		},
		Featured: []content.Project{{Name: "Agent Flow", Status: "Live"}},
	})
	require.NoError(t, err)

	doc := parse(t, out)
	cards := doc.Find("section#team .member-card[data-reveal]")
	require.Equal(t, 2, cards.Length())
	assert.Equal(t, "Basil Ebinesar", cards.First().Find("h3").Text())
	assert.Equal(t, "President", cards.First().Find(".member-card__role").Text())
	src, _ := cards.First().Find("img").Attr("src")
	assert.Equal(t, "/Applied-AI-Club/static/team/basil.jpg", src)
	alt, _ := cards.First().Find("img").Attr("alt")
	assert.Equal(t, "Basil Ebinesar", alt)
	assert.Equal(t, 0, cards.Last().Find("img").Length())
	assert.Equal(t, "KG", cards.Last().Find(".member-card__initials").Text())

	tile := doc.Find("section#initiatives .initiative-card[data-reveal]")
	require.Equal(t, 1, tile.Length())
	assert.Equal(t, "Healthcare AI & Diagnostics", tile.Find("h3").Text())
	assert.Equal(t, 2, tile.Find(".tag").Length())

	assert.Equal(t, 1, doc.Find("section#projects .project-card").Length())
}

func TestRenderHomeWithoutTeam(t *testing.T) {
	r := newTheme(t)
	out, err := r.RenderHome(context.Background(), HomePage{Base: base("Applied AI Club")})
	require.NoError(t, err)

	doc := parse(t, out)
	assert.Equal(t, 0, doc.Find("#team").Length())
	assert.Equal(t, 0, doc.Find("#initiatives").Length())
}

func TestRenderRemainingPages(t *testing.T) {
	r := newTheme(t)
	ctx := context.Background()
	posts := []content.PostMeta{{Title: "One", Slug: "one"}}

	out, err := r.RenderBlog(ctx, BlogPage{Base: base("Blog"), Posts: posts, Tags: []Term{{Key: "mcp", Name: "MCP", Count: 1}}})
	require.NoError(t, err)
	assert.Equal(t, 1, parse(t, out).Find(".blog-card").Length())

	out, err = r.RenderList(ctx, ListPage{Base: base("#MCP"), Kind: ListTag, Name: "MCP", Posts: posts})
	require.NoError(t, err)
	assert.Equal(t, "#MCP", parse(t, out).Find("h1").Text())

	out, err = r.RenderProjects(ctx, ProjectsPage{Base: base("Projects"), Groups: content.GroupProjects([]content.Project{{Name: "X", Status: "Planned"}})})
	require.NoError(t, err)
	assert.Equal(t, "Planned", parse(t, out).Find(".projects__status").Text())

	out, err = r.RenderResources(ctx, ResourcesPage{Base: base("Resources")})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	out, err = r.RenderNotFound(ctx, NotFoundPage{Base: base("Not found"), Path: "/nope"})
	require.NoError(t, err)
	assert.Equal(t, "/nope", parse(t, out).Find("code").Text())

	out, err = r.RenderRedirect(ctx, RedirectPage{Base: base("Moved"), Target: "/Applied-AI-Club/blog/one/"})
	require.NoError(t, err)
	href, _ := parse(t, out).Find("link[rel=canonical]").Attr("href")
	assert.Equal(t, "/Applied-AI-Club/blog/one/", href)
}

func TestRenderHonoursContext(t *testing.T) {
	r := newTheme(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.RenderBlog(ctx, BlogPage{Base: base("Blog")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckThemeTemplates(t *testing.T) {
	assert.NoError(t, CheckThemeTemplates(filepath.Join("..", "..", "themes", "default", "templates")))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.tmpl"), nil, 0o644))
	err := CheckThemeTemplates(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post.tmpl")
	assert.NotContains(t, err.Error(), "home.tmpl,")
}
