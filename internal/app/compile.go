package app

import (
	"clubsite/internal/domain/content"
	"clubsite/internal/ingest"
	"clubsite/internal/render"
	"context"
	"fmt"
	"os"
)

// CompilePosts renders every post body once. The returned posts carry
// their word counts and headings; bodies are keyed by slug. Markdown
// issues come back as warnings against the source file.
func CompilePosts(ctx context.Context, md render.MarkdownRenderer, posts []content.Post) ([]content.Post, map[string]render.MarkdownResult, []ingest.Warning, error) {
	out := make([]content.Post, 0, len(posts))
	bodies := make(map[string]render.MarkdownResult, len(posts))
	var warns []ingest.Warning

	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		raw, err := os.ReadFile(p.Body.SourcePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("read post source(%s): %w", p.Body.SourcePath, err)
		}
		res, err := md.Render(ingest.Body(raw))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("markdown render(%s): %w", p.Meta.Slug, err)
		}
		for _, is := range res.Issues {
			warns = append(warns, ingest.Warning{Path: p.Body.SourcePath, Msg: is})
		}

		p.Meta.WordCount = res.Words
		p.Meta.Headings = res.TOC
		bodies[p.Meta.Slug] = res
		out = append(out, p)
	}
	return out, bodies, warns, nil
}
