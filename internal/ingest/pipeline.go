package ingest

import (
	"clubsite/internal/domain/content"
	"context"
	"errors"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

type Warning struct {
	Path string
	Msg  string
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Msg
	}
	return w.Path + ": " + w.Msg
}

type Result struct {
	Post  content.Post
	Warns []Warning
	Skip  bool
	Err   error
}

// Ingest reads every post under sourceDir with a pool of GOMAXPROCS
// workers. Problems with a single post are warnings; only I/O failures
// and cancellation abort the run. Posts come back newest first.
func Ingest(ctx context.Context, sourceDir string, loc *time.Location) ([]content.Post, []Warning, error) {
	files, err := DiscoverSource(sourceDir)
	if err != nil {
		return nil, nil, err
	}
	if loc == nil {
		loc = time.Local
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan SourceFile)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				select {
				case results <- readPost(sf, loc):
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			select {
			case jobs <- f:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var out []content.Post
	var warns []Warning
	var firstErr error
	for r := range results {
		if firstErr != nil {
			continue
		}
		if r.Err != nil {
			firstErr = r.Err
			cancel()
			continue
		}
		warns = append(warns, r.Warns...)
		if !r.Skip {
			out = append(out, r.Post)
		}
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Body.SourcePath < out[j].Body.SourcePath
	})
	seen := make(map[string]struct{}, len(out))
	filtered := make([]content.Post, 0, len(out))
	for _, p := range out {
		if _, ok := seen[p.Meta.Slug]; ok {
			warns = append(warns, Warning{Path: p.Body.SourcePath, Msg: "duplicate slug, skipped: " + p.Meta.Slug})
			continue
		}
		seen[p.Meta.Slug] = struct{}{}
		filtered = append(filtered, p)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Meta.Date.After(filtered[j].Meta.Date)
	})
	sort.SliceStable(warns, func(i, j int) bool { return warns[i].Path < warns[j].Path })
	return filtered, warns, nil
}

func readPost(sf SourceFile, loc *time.Location) Result {
	st, err := os.Stat(sf.Path)
	if err != nil {
		return Result{Err: err}
	}
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return Result{Err: err}
	}

	var warns []Warning
	fm, _, fmErr := ParseFrontMatter(raw)
	if fmErr != nil && !errors.Is(fmErr, errNoFrontMatter) {
		warns = append(warns, Warning{Path: sf.Path, Msg: "failed to parse front matter: " + fmErr.Error()})
		return Result{Warns: warns, Skip: true}
	}
	if fm.Hidden {
		return Result{Skip: true}
	}

	slug := ResolveSlug(fm, sf.Path)
	if slug == "" {
		warns = append(warns, Warning{Path: sf.Path, Msg: "empty slug"})
		return Result{Warns: warns, Skip: true}
	}

	meta := content.PostMeta{
		Title:       fm.Title,
		Slug:        slug,
		Description: fm.Description,
		Author:      fm.Author,
		Category:    fm.Category,
		ReadingTime: fm.ReadingTime,
		Tags:        fm.Tags,
		Aliases:     fm.Aliases,
		Cover:       fm.Cover,
		Hidden:      fm.Hidden,
		Draft:       fm.Draft,
	}
	meta.Date = ParseTime(fm.Date, loc)
	meta.Updated = ParseTime(fm.Updated, loc)
	if fm.Date != "" && meta.Date.IsZero() {
		warns = append(warns, Warning{Path: sf.Path, Msg: "unrecognised date " + fm.Date})
	}
	if meta.Date.IsZero() {
		meta.Date = st.ModTime().In(loc)
		warns = append(warns, Warning{Path: sf.Path, Msg: "using file modification time for date"})
	}
	if meta.Updated.IsZero() {
		meta.Updated = meta.Date
	}
	if strings.TrimSpace(meta.Title) == "" {
		warns = append(warns, Warning{Path: sf.Path, Msg: "title is empty"})
	}
	meta.Normalize()

	return Result{
		Post: content.Post{
			Meta: meta,
			Body: content.BodyRef{
				SourcePath:  sf.Path,
				ContentHash: HashBytes(raw),
			},
		},
		Warns: warns,
	}
}
