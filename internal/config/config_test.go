package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into a clean temp directory so no stray folio.yaml or
// .env files are picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("ENV_FILE", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "content/blog", cfg.Content.Root)
	assert.Equal(t, 150, cfg.Content.ExcerptLength)
	assert.Equal(t, "/blog", cfg.Site.BlogPath)
	assert.Equal(t, "Editorial Team", cfg.Site.DefaultAuthor)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "public", cfg.Build.OutputDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "site.yaml")
	data := "content:\n  root: posts\n  ignore: [\"_*.md\"]\nsite:\n  base_url: https://school.example/\n  blog_path: news/\n  default_author: Riverside Academy\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "posts", cfg.Content.Root)
	assert.Equal(t, []string{"_*.md"}, cfg.Content.Ignore)
	assert.Equal(t, "https://school.example", cfg.Site.BaseURL)
	assert.Equal(t, "/news", cfg.Site.BlogPath)
	assert.Equal(t, "Riverside Academy", cfg.Site.DefaultAuthor)
	assert.Equal(t, "https://school.example/news/welcome", cfg.Site.PostURL("welcome"))
	assert.Equal(t, "/news/welcome", cfg.Site.PostPath("welcome"))
}

func TestLoadDefaultFileName(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "folio.yaml"), []byte("server:\n  addr: \":9090\"\n"), 0o644))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoadMissingNamedFile(t *testing.T) {
	chdir(t)
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	chdir(t)
	t.Setenv("FOLIO_CONTENT_ROOT", "/srv/posts")
	t.Setenv("FOLIO_SITE_NAME", "From Env")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/posts", cfg.Content.Root)
	assert.Equal(t, "From Env", cfg.Site.Name)
}

func TestDotEnvFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FOLIO_SERVER_ADDR=:7070\n"), 0o644))
	t.Setenv("FOLIO_SERVER_ADDR", "")
	os.Unsetenv("FOLIO_SERVER_ADDR")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestValidate(t *testing.T) {
	base := Config{
		Content: ContentConfig{Root: "content", ExcerptLength: 150},
		Site:    SiteConfig{BaseURL: "https://example.org"},
	}
	require.NoError(t, base.Validate())

	noRoot := base
	noRoot.Content.Root = " "
	assert.Error(t, noRoot.Validate())

	relURL := base
	relURL.Site.BaseURL = "/relative"
	assert.Error(t, relURL.Validate())

	tiny := base
	tiny.Content.ExcerptLength = 2
	assert.Error(t, tiny.Validate())
}

func TestEmptyBlogPath(t *testing.T) {
	c := Config{Site: SiteConfig{BaseURL: "https://example.org/", BlogPath: "/"}}
	c.normalize()
	assert.Equal(t, "https://example.org/post", c.Site.PostURL("post"))
}
