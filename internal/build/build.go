package build

import (
	"clubsite/internal/app"
	domainbuild "clubsite/internal/domain/build"
	"clubsite/internal/domain/config"
	"clubsite/internal/index"
	"clubsite/internal/ingest"
	"clubsite/internal/render"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

type Builder struct {
	Cfg config.Config
	// Force renders even when the fingerprint matches the last build.
	Force bool
}

type Result struct {
	Posts    int
	Pages    int
	Bytes    int64
	Skipped  bool
	Warnings []ingest.Warning
}

func (r *Result) Summary() string {
	if r.Skipped {
		return fmt.Sprintf("%d posts, output up to date", r.Posts)
	}
	return fmt.Sprintf("%d posts, %d pages, %s", r.Posts, r.Pages, humanize.Bytes(uint64(r.Bytes)))
}

func (b *Builder) Run(ctx context.Context) (*Result, error) {
	cfg := b.Cfg
	loc := cfg.Site.Location()

	posts, warns, err := ingest.Ingest(ctx, cfg.Build.SourceDir, loc)
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	catalog, cwarns, err := ingest.LoadCatalog(cfg.Build.DataDir, loc)
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}
	warns = append(warns, cwarns...)

	md, err := render.NewMarkdownRenderer(cfg.Build.Markdown)
	if err != nil {
		return nil, err
	}
	posts, bodies, mwarns, err := app.CompilePosts(ctx, md, posts)
	if err != nil {
		return nil, err
	}
	warns = append(warns, mwarns...)

	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	defer st.Close()

	skipped, err := st.Rebuild(posts, index.RebuildOptions{IncludeDraft: cfg.Build.IncludeDraft})
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild index: %w", err)
	}
	for _, msg := range skipped {
		warns = append(warns, ingest.Warning{Msg: msg})
	}

	res := &Result{Posts: len(posts), Warnings: warns}

	fp, err := b.fingerprint(md)
	if err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}
	if !b.Force {
		prev, err := st.LoadFingerprint()
		if err != nil && !errors.Is(err, index.ErrNotFound) {
			return nil, fmt.Errorf("load fingerprint: %w", err)
		}
		if err == nil && prev.Same(fp) && dirExists(cfg.Build.PublicDir) {
			res.Skipped = true
			return res, nil
		}
	}

	tplDir := filepath.Join(cfg.Build.ThemeDir, cfg.Site.Theme, "templates")
	if err := render.CheckThemeTemplates(tplDir); err != nil {
		return nil, err
	}
	tpl, err := render.NewTemplateRenderer(render.TemplateOptions{
		ThemeDir: cfg.Build.ThemeDir,
		Theme:    cfg.Site.Theme,
		BasePath: cfg.Build.BasePath,
		Language: cfg.Site.Language,
		Now:      cfg.Build.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("load themes(%s): %w", cfg.Build.ThemeDir, err)
	}

	outDir := cfg.Build.PublicDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir public: %w", err)
	}

	s := &app.Site{
		Cfg:       cfg,
		Index:     st,
		Catalog:   catalog,
		Templates: tpl,
		Bodies:    bodies,
	}
	rb := &app.RouteBuilder{Index: st, IncludeDraft: cfg.Build.IncludeDraft}
	routes, err := rb.All()
	if err != nil {
		return nil, fmt.Errorf("build routes: %w", err)
	}
	for _, r := range routes {
		htmlBytes, err := s.Render(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", r.URL, err)
		}
		if err := writeFile(outDir, r.OutPath, htmlBytes); err != nil {
			return nil, err
		}
		res.Pages++
		res.Bytes += int64(len(htmlBytes))
	}

	n, err := b.copyStaticAssets(outDir)
	if err != nil {
		return nil, fmt.Errorf("copy static assets: %w", err)
	}
	res.Bytes += n

	if err := st.SaveFingerprint(fp); err != nil {
		return nil, fmt.Errorf("save fingerprint: %w", err)
	}
	return res, nil
}

// fingerprint hashes every input of the rendered output. The build day
// is part of the config hash because event lists depend on it.
func (b *Builder) fingerprint(md render.MarkdownRenderer) (domainbuild.Fingerprint, error) {
	cfg := b.Cfg
	var fp domainbuild.Fingerprint
	var err error

	if fp.ContentHash, err = ingest.HashDir(cfg.Build.SourceDir); err != nil {
		return fp, err
	}
	if fp.DataHash, err = ingest.HashDir(cfg.Build.DataDir); err != nil {
		return fp, err
	}
	if fp.ThemeHash, err = ingest.HashDir(filepath.Join(cfg.Build.ThemeDir, cfg.Site.Theme)); err != nil {
		return fp, err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return fp, err
	}
	raw = append(raw, cfg.Build.Now.In(cfg.Site.Location()).Format("2006-01-02")...)
	fp.ConfigHash = ingest.HashBytes(raw)
	fp.RendererHash = md.Name()
	fp.ComputeRenderHash()
	return fp, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func writeFile(root, rel string, data []byte) error {
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

// copyStaticAssets mirrors the theme's static directory under
// <outDir>/static and returns the bytes written.
func (b *Builder) copyStaticAssets(outDir string) (int64, error) {
	src := filepath.Join(b.Cfg.Build.ThemeDir, b.Cfg.Site.Theme, "static")
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if !info.IsDir() {
		return 0, nil
	}

	var total int64
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		in, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		total += int64(len(in))
		return writeFile(filepath.Join(outDir, "static"), filepath.ToSlash(rel), in)
	})
	return total, err
}
