package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// newSite creates a working directory with a content/blog tree and changes
// into it. config.Load reads folio.yaml and .env files from the working
// directory, so each test gets its own.
func newSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	blog := filepath.Join(dir, "content", "blog")
	if err := os.MkdirAll(blog, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(blog, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
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

func samplePosts() map[string]string {
	return map[string]string{
		"welcome.md":  "---\ntitle: Welcome\ndate: 2024-01-15\nauthor: Jane\ntags: [news]\n---\nHello **world**.\n",
		"roadmap.mdx": "---\ntitle: Roadmap\ndate: 2024-03-01\n---\nimport Chart from './chart'\n\nWhat is next.\n",
	}
}

// run executes the CLI with args and returns stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// ---------------------------------------------------------------------------
// Help and dispatch
// ---------------------------------------------------------------------------

// TestHelpContainsAllCommands verifies every registered subcommand appears in
// the root help with its short description.
func TestHelpContainsAllCommands(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})
	if err := root.Execute(); err != nil {
		t.Fatalf("--help: %v", err)
	}
	help := out.String()
	if !strings.Contains(help, "Usage:") {
		t.Error("help output missing 'Usage:' header")
	}
	for _, cmd := range root.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "completion" {
			continue
		}
		if !strings.Contains(help, cmd.Name()) {
			t.Errorf("help output missing command %q", cmd.Name())
		}
		if !strings.Contains(help, cmd.Short) {
			t.Errorf("help output missing short description %q", cmd.Short)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	newSite(t, nil)
	_, err := run(t, "no-such-command")
	if err == nil || !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("expected unknown command error, got %v", err)
	}
}

// TestBadArgs verifies commands reject the wrong number of arguments.
func TestBadArgs(t *testing.T) {
	newSite(t, samplePosts())
	tests := [][]string{
		{"show"},
		{"show", "a", "b"},
		{"slugs", "extra"},
		{"og"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, "_"), func(t *testing.T) {
			if _, err := run(t, args...); err == nil {
				t.Errorf("%v: expected error", args)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestSlugs(t *testing.T) {
	newSite(t, samplePosts())
	out, err := run(t, "slugs")
	if err != nil {
		t.Fatalf("slugs: %v", err)
	}
	if out != "roadmap\nwelcome\n" {
		t.Errorf("slugs output = %q", out)
	}
}

func TestList(t *testing.T) {
	newSite(t, samplePosts())
	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	roadmap := strings.Index(out, "Roadmap")
	welcome := strings.Index(out, "Welcome")
	if roadmap < 0 || welcome < 0 || roadmap > welcome {
		t.Errorf("list not newest first:\n%s", out)
	}
	if !strings.Contains(out, "Editorial Team") {
		t.Errorf("default author missing:\n%s", out)
	}
}

func TestListEmpty(t *testing.T) {
	newSite(t, nil)
	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No posts found") {
		t.Errorf("list output = %q", out)
	}
}

func TestShow(t *testing.T) {
	newSite(t, samplePosts())
	out, err := run(t, "show", "welcome")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{
		"title:        Welcome",
		"author:       Jane",
		"url:          http://localhost:8080/blog/welcome",
		"<strong>world</strong>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestShowMissing(t *testing.T) {
	newSite(t, samplePosts())
	_, err := run(t, "show", "nope")
	if err == nil || !strings.Contains(err.Error(), `post "nope" not found`) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestMissingContentRoot(t *testing.T) {
	newSite(t, nil)
	_, err := run(t, "--content", "does/not/exist", "slugs")
	if err == nil || !strings.Contains(err.Error(), "load content") {
		t.Errorf("expected load error, got %v", err)
	}
}

func TestContentFlag(t *testing.T) {
	dir := newSite(t, nil)
	other := filepath.Join(dir, "posts")
	if err := os.MkdirAll(other, 0o755); err != nil {
		t.Fatal(err)
	}
	doc := "---\ntitle: Elsewhere\ndate: 2024-05-05\n---\nBody.\n"
	if err := os.WriteFile(filepath.Join(other, "elsewhere.md"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--content", other, "slugs")
	if err != nil {
		t.Fatalf("slugs: %v", err)
	}
	if out != "elsewhere\n" {
		t.Errorf("slugs output = %q", out)
	}
}

func TestConfigFile(t *testing.T) {
	dir := newSite(t, samplePosts())
	cfg := "site:\n  base_url: https://blog.example.com\n  blog_path: /posts\n"
	if err := os.WriteFile(filepath.Join(dir, "folio.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "show", "welcome")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "https://blog.example.com/posts/welcome") {
		t.Errorf("config file not applied:\n%s", out)
	}
}

// ---------------------------------------------------------------------------
// check
// ---------------------------------------------------------------------------

func TestCheck(t *testing.T) {
	files := samplePosts()
	files["broken.md"] = "---\ntitle: [unterminated\n---\n"
	newSite(t, files)

	out, err := run(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "2 posts loaded, 1 files excluded") {
		t.Errorf("check summary missing:\n%s", out)
	}
	if !strings.Contains(out, "broken.md") {
		t.Errorf("check output missing excluded file:\n%s", out)
	}

	if _, err := run(t, "check", "--strict"); err == nil {
		t.Error("check --strict: expected error with excluded files")
	}
}

func TestCheckStrictClean(t *testing.T) {
	newSite(t, samplePosts())
	if _, err := run(t, "check", "--strict"); err != nil {
		t.Errorf("check --strict on clean content: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Output commands
// ---------------------------------------------------------------------------

func TestSitemap(t *testing.T) {
	newSite(t, samplePosts())
	out, err := run(t, "sitemap")
	if err != nil {
		t.Fatalf("sitemap: %v", err)
	}
	if !strings.Contains(out, "<loc>http://localhost:8080/blog/roadmap</loc>") {
		t.Errorf("sitemap missing roadmap:\n%s", out)
	}

	if _, err := run(t, "sitemap", "-o", "sitemap.xml"); err != nil {
		t.Fatalf("sitemap -o: %v", err)
	}
	data, err := os.ReadFile("sitemap.xml")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != out {
		t.Error("sitemap file differs from stdout output")
	}
}

func TestOG(t *testing.T) {
	newSite(t, samplePosts())
	for _, slug := range []string{"welcome", "unknown"} {
		file := slug + ".png"
		if _, err := run(t, "og", slug, "-o", file); err != nil {
			t.Fatalf("og %s: %v", slug, err)
		}
		f, err := os.Open(file)
		if err != nil {
			t.Fatal(err)
		}
		_, err = png.Decode(f)
		f.Close()
		if err != nil {
			t.Errorf("og %s: not a PNG: %v", slug, err)
		}
	}
}

func TestBuild(t *testing.T) {
	dir := newSite(t, samplePosts())
	out, err := run(t, "build", "--out", "site")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, "wrote 8 files") {
		t.Errorf("build summary = %q", out)
	}
	for _, p := range []string{
		"blog/index.html",
		"blog/welcome/index.html",
		"blog/roadmap/index.html",
		"404.html",
		"sitemap.xml",
		"og/_default.png",
	} {
		if _, err := os.Stat(filepath.Join(dir, "site", filepath.FromSlash(p))); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
}

func TestBuildStaticDir(t *testing.T) {
	dir := newSite(t, samplePosts())
	if err := os.MkdirAll(filepath.Join(dir, "static"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "static", "robots.txt"), []byte("User-agent: *\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_BUILD_STATIC_DIR", "static")

	if _, err := run(t, "build", "--out", "site"); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "site", "robots.txt")); err != nil {
		t.Errorf("static file not copied: %v", err)
	}
}
