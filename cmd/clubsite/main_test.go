package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runArgs(args ...string) (int, string, string) {
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runArgs()
	assert.Equal(t, exitConfig, code)
	assert.Contains(t, stderr, "usage:")

	code, _, stderr = runArgs("publish")
	assert.Equal(t, exitConfig, code)
	assert.Contains(t, stderr, `unknown command "publish"`)

	code, stdout, _ := runArgs("help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "clubsite dump")
}

func TestDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: x\n---\n## Part 1: MCP\ntext\n\n```go\nopen\n"), 0o644))

	code, stdout, _ := runArgs("dump", "-no-color", "-lint", path)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Heading")
	assert.Contains(t, stdout, `"part-1-mcp"`)
	assert.Contains(t, stdout, "code fence never closed")

	code, stdout, _ = runArgs("dump", "-no-color", "-toc", path)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "TOCEntry")
	assert.NotContains(t, stdout, "Paragraph")

	code, _, _ = runArgs("dump")
	assert.Equal(t, exitConfig, code)

	code, _, _ = runArgs("dump", filepath.Join(t.TempDir(), "missing.md"))
	assert.Equal(t, exitFailure, code)
}

func TestBuildInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  title: \"\"\n  site_url: not-a-url\n"), 0o644))

	code, _, stderr := runArgs("build", "-config", path)
	assert.Equal(t, exitConfig, code)
	assert.Contains(t, stderr, "site.title: must not be empty")
	assert.Contains(t, stderr, "site.site_url: must be a valid absolute URL")

	code, _, _ = runArgs("build", "-nope")
	assert.Equal(t, exitConfig, code)
}

func TestBuildCommand(t *testing.T) {
	root := t.TempDir()
	post := filepath.Join(root, "blog", "hello.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(post), 0o755))
	require.NoError(t, os.WriteFile(post, []byte("---\ntitle: Hello\ndate: 2026-03-01\n---\nhi\n"), 0o644))

	cfg := "site:\n  title: Applied AI Club\n  site_url: https://example.org\n" +
		"build:\n" +
		"  source_dir: " + filepath.Join(root, "blog") + "\n" +
		"  data_dir: " + filepath.Join(root, "data") + "\n" +
		"  public_dir: " + filepath.Join(root, "public") + "\n" +
		"  index_path: " + filepath.Join(root, "index.db") + "\n" +
		"  theme_dir: " + filepath.Join("..", "..", "themes") + "\n"
	path := filepath.Join(root, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	code, stdout, stderr := runArgs("build", "-config", path)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "[build] 1 posts")
	assert.Contains(t, stderr, "[warn]")
	_, err := os.Stat(filepath.Join(root, "public", "blog", "hello", "index.html"))
	assert.NoError(t, err)
}
