package serve

import (
	"clubsite/internal/app"
	"clubsite/internal/domain/config"
	"clubsite/internal/domain/content"
	"clubsite/internal/domain/site"
	"clubsite/internal/index"
	"clubsite/internal/ingest"
	"clubsite/internal/render"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Server renders every page on request from an in-memory snapshot that
// is rebuilt whenever content, data or theme files change.
type Server struct {
	cfg config.Config
	idx *index.Store

	mu     sync.RWMutex
	site   *app.Site
	routes map[string]site.Route
	// posts is what the index currently holds for site.
	posts []content.Post

	sseMu    sync.Mutex
	sseConns map[chan string]struct{}

	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

// New opens the index. Drafts are always shown and pages are served from
// the root, whatever the configured base path.
func New(cfg config.Config) (*Server, error) {
	cfg.Build.IncludeDraft = true
	cfg.Build.BasePath = ""

	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("serve: failed to open index: %w", err)
	}
	return &Server{
		cfg:      cfg,
		idx:      st,
		routes:   make(map[string]site.Route),
		sseConns: make(map[chan string]struct{}),
	}, nil
}

func (s *Server) Close() error {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.idx != nil {
		return s.idx.Close()
	}
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := s.Rebuild(ctx); err != nil {
		return err
	}
	if err := s.startWatch(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.broadcastSSE("bye")
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[serve] listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/dev/events", s.handleSSE)

	staticDir := filepath.Join(s.cfg.Build.ThemeDir, s.cfg.Site.Theme, "static")
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("/", s.handlePage)
	return mux
}

// Rebuild re-reads content, data and theme, then swaps the snapshot and
// tells connected browsers to reload. On error the old snapshot stays and
// the index still holds the posts it was built from.
func (s *Server) Rebuild(ctx context.Context) error {
	cfg := s.cfg
	loc := cfg.Site.Location()
	log.Printf("[serve] ingest from %s ...", cfg.Build.SourceDir)

	posts, warns, err := ingest.Ingest(ctx, cfg.Build.SourceDir, loc)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	catalog, cwarns, err := ingest.LoadCatalog(cfg.Build.DataDir, loc)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	warns = append(warns, cwarns...)

	md, err := render.NewMarkdownRenderer(cfg.Build.Markdown)
	if err != nil {
		return err
	}
	posts, bodies, mwarns, err := app.CompilePosts(ctx, md, posts)
	if err != nil {
		return err
	}
	warns = append(warns, mwarns...)

	tpl, err := render.NewTemplateRenderer(render.TemplateOptions{
		ThemeDir: cfg.Build.ThemeDir,
		Theme:    cfg.Site.Theme,
		Language: cfg.Site.Language,
		Now:      time.Now(),
	})
	if err != nil {
		return fmt.Errorf("load themes(%s): %w", cfg.Build.ThemeDir, err)
	}

	cfg.Build.Now = time.Now()
	next := &app.Site{
		Cfg:        cfg,
		Index:      s.idx,
		Catalog:    catalog,
		Templates:  tpl,
		Bodies:     bodies,
		LiveReload: true,
	}

	// The index is shared with the live snapshot, so readers wait until
	// index and routes agree again.
	s.mu.Lock()
	skipped, err := s.idx.Rebuild(posts, index.RebuildOptions{IncludeDraft: true})
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("index rebuild: %w", err)
	}
	rb := &app.RouteBuilder{Index: s.idx, IncludeDraft: true}
	routes, err := rb.All()
	if err != nil {
		err = fmt.Errorf("routes: %w", err)
		if _, rerr := s.idx.Rebuild(s.posts, index.RebuildOptions{IncludeDraft: true}); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore index: %w", rerr))
		}
		s.mu.Unlock()
		return err
	}
	byURL := make(map[string]site.Route, len(routes))
	for _, r := range routes {
		byURL[r.URL] = r
	}
	s.site = next
	s.routes = byURL
	s.posts = posts
	s.mu.Unlock()

	for _, msg := range skipped {
		warns = append(warns, ingest.Warning{Msg: msg})
	}
	for _, w := range warns {
		log.Printf("[warn] %s", w)
	}

	log.Printf("[serve] rebuild complete: %d posts, %d routes", len(posts), len(routes))
	s.broadcastSSE("reload")
	return nil
}

func (s *Server) watchDirs() []string {
	return []string{
		s.cfg.Build.SourceDir,
		s.cfg.Build.DataDir,
		filepath.Join(s.cfg.Build.ThemeDir, s.cfg.Site.Theme),
	}
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		for _, dir := range s.watchDirs() {
			if e := addTree(w, dir); e != nil {
				err = e
				return
			}
		}
		go s.watchLoop(ctx)
	})
	return err
}

// addTree watches root and every directory below it. A missing root is
// skipped.
func addTree(w *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Server) watchLoop(ctx context.Context) {
	log.Printf("[serve] watching for file changes ...")
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	delay := s.cfg.Serve.Debounce
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	trigger := func() {
		if !debounce.Stop() {
			select {
			case <-debounce.C:
			default:
			}
		}
		debounce.Reset(delay)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				// new directories need their own watch
				_ = addTree(s.watcher, ev.Name)
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				trigger()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[warn] watcher error: %v", err)
		case <-debounce.C:
			ctx2, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := s.Rebuild(ctx2); err != nil {
				log.Printf("[serve] rebuild error: %v", err)
			}
			cancel()
		}
	}
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan string, 8)

	s.sseMu.Lock()
	s.sseConns[ch] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseConns, ch)
		close(ch)
		s.sseMu.Unlock()
	}()
	fmt.Fprintf(w, "data: %s\n\n", "hello")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcastSSE(msg string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	for ch := range s.sseConns {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (s *Server) lookup(path string) (built bool, r site.Route, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok = s.routes[path]
	return s.site != nil, r, ok
}

// render holds the read lock so the snapshot and the index it reads
// cannot change underneath a request.
func (s *Server) render(ctx context.Context, route site.Route) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site.Render(ctx, route)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	path := r.URL.Path
	if path == "/index.html" {
		path = "/"
	}
	path = strings.TrimSuffix(path, "index.html")

	built, route, ok := s.lookup(path)
	if !built {
		http.Error(w, "site not built yet", http.StatusServiceUnavailable)
		return
	}
	if !ok && !strings.HasSuffix(path, "/") {
		if _, _, slashed := s.lookup(path + "/"); slashed {
			http.Redirect(w, r, path+"/", http.StatusMovedPermanently)
			return
		}
	}
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	if route.Kind == site.RouteAlias {
		http.Redirect(w, r, route.Target, http.StatusMovedPermanently)
		return
	}

	htmlBytes, err := s.render(r.Context(), route)
	if err != nil {
		if errors.Is(err, index.ErrNotFound) {
			s.handleNotFound(w, r)
			return
		}
		log.Printf("[serve] render %s error: %v", route.URL, err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, htmlBytes)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	htmlBytes, err := s.render(r.Context(), site.Route{Kind: site.RouteNotFound, Key: r.URL.Path})
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeHTML(w, http.StatusNotFound, htmlBytes)
}

func writeHTML(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
