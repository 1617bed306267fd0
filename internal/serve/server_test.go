package serve

import (
	"clubsite/internal/domain/config"
	"clubsite/internal/index"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func newServer(t *testing.T) (*Server, config.Config) {
	t.Helper()
	root := t.TempDir()
	put(t, filepath.Join(root, "blog", "a2a-vs-mcp.md"), "---\ntitle: A2A vs MCP\ndate: 2026-02-24\ntags: [MCP]\naliases: [old-name]\n---\n## Intro\nhello\n")
	put(t, filepath.Join(root, "blog", "wip.md"), "---\ntitle: Work in progress\ndraft: true\ndate: 2026-03-01\n---\nsoon\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))

	cfg := config.Default()
	cfg.Site.SiteURL = "https://example.org"
	cfg.Build.SourceDir = filepath.Join(root, "blog")
	cfg.Build.DataDir = filepath.Join(root, "data")
	cfg.Build.IndexPath = filepath.Join(root, ".clubsite", "index.db")
	cfg.Build.ThemeDir = filepath.Join("..", "..", "themes")
	cfg.Build.BasePath = "/club"
	cfg.Serve.Debounce = 20 * time.Millisecond

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, cfg
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestServePages(t *testing.T) {
	s, _ := newServer(t)
	require.NoError(t, s.Rebuild(context.Background()))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `new EventSource("/dev/events")`)

	resp, body = get(t, ts.URL+"/blog/a2a-vs-mcp/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<h2 id="intro" class="bp-h2">`)
	assert.Contains(t, body, `href="/blog/tags/mcp/"`, "served from the root")

	resp, body = get(t, ts.URL+"/blog/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Work in progress")

	resp, _ = get(t, ts.URL+"/blog/a2a-vs-mcp")
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/blog/a2a-vs-mcp/", resp.Header.Get("Location"))

	resp, _ = get(t, ts.URL+"/blog/old-name/")
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/blog/a2a-vs-mcp/", resp.Header.Get("Location"))

	resp, body = get(t, ts.URL+"/nope/")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "/nope/")

	resp, body = get(t, ts.URL+"/static/js/reveal.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "data-reveal")
}

func TestFailedRebuildKeepsSnapshotAndIndex(t *testing.T) {
	s, cfg := newServer(t)
	ctx := context.Background()
	require.NoError(t, s.Rebuild(ctx))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	put(t, filepath.Join(cfg.Build.SourceDir, "late.md"), "---\ntitle: Late post\ndate: 2026-03-10\n---\nlate\n")
	put(t, filepath.Join(cfg.Build.DataDir, "members.yaml"), "members:\n  - name: Tanvi Tomar\n")
	err := s.Rebuild(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, "members[0].role")

	posts, err := s.idx.List(index.ListOptions{IncludeDraft: true})
	require.NoError(t, err)
	var slugs []string
	for _, m := range posts {
		slugs = append(slugs, m.Slug)
	}
	assert.ElementsMatch(t, []string{"a2a-vs-mcp", "wip"}, slugs)

	resp, body := get(t, ts.URL+"/blog/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "A2A vs MCP")
	assert.NotContains(t, body, "Late post")
	resp, _ = get(t, ts.URL+"/blog/late/")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	put(t, filepath.Join(cfg.Build.DataDir, "members.yaml"), "members:\n  - name: Tanvi Tomar\n    role: Treasurer\n")
	require.NoError(t, s.Rebuild(ctx))
	_, body = get(t, ts.URL+"/blog/")
	assert.Contains(t, body, "Late post")
	_, body = get(t, ts.URL+"/")
	assert.Contains(t, body, "Treasurer")
}

func TestServeBeforeBuild(t *testing.T) {
	s, _ := newServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWatchRebuildsAndNotifies(t *testing.T) {
	s, cfg := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Rebuild(ctx))
	require.NoError(t, s.startWatch(ctx))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/dev/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan string, 4)
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := resp.Body.Read(buf)
			if n > 0 {
				events <- string(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()
	assert.Contains(t, <-events, "data: hello")

	put(t, filepath.Join(cfg.Build.SourceDir, "new.md"), "---\ntitle: Fresh post\ndate: 2026-03-05\n---\nnew\n")

	select {
	case ev := <-events:
		assert.Contains(t, ev, "data: reload")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event")
	}

	assert.Eventually(t, func() bool {
		resp, err := http.Get(ts.URL + "/blog/")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return strings.Contains(string(body), "Fresh post")
	}, 5*time.Second, 50*time.Millisecond)
}
