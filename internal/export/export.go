package export

// export.go: renders the whole collection into a static site.
//
// Site layout (blog path "/blog"):
//   blog/index.html          post listing, newest first
//   blog/<slug>/index.html   one per post
//   404.html                 not-found page
//   sitemap.xml              every post URL with lastmod
//   og/<slug>.png            preview image per post
//   og/_default.png          generic preview image
//
// Generation is pure; Write is the only step that touches disk.

import (
	"bytes"
	"fmt"
	"path"
	"runtime"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"folio/internal/content"
	"folio/internal/ogimage"
	"folio/internal/post"
	"folio/internal/render"
	"folio/internal/sitemap"
)

// Bundle holds generated file content keyed by slash-separated path relative
// to the output directory.
type Bundle struct {
	files map[string][]byte
}

// Paths returns every path in the bundle, sorted.
func (b *Bundle) Paths() []string {
	paths := make([]string, 0, len(b.files))
	for p := range b.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// File returns the content generated for path.
func (b *Bundle) File(path string) ([]byte, bool) {
	data, ok := b.files[path]
	return data, ok
}

// Len returns the number of files.
func (b *Bundle) Len() int {
	return len(b.files)
}

// Site locates the blog within the exported site.
type Site struct {
	BaseURL  string
	BlogPath string
}

// Generate builds every page, the sitemap and the preview images for repo.
// No files are written.
func Generate(repo *content.Repository, pages *render.Renderer, images *ogimage.Renderer, site Site) (*Bundle, error) {
	files := make(map[string][]byte)
	summaries := repo.ListAll()

	var buf bytes.Buffer
	if err := pages.Index(&buf, summaries); err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	files[pagePath(site.BlogPath)] = clone(buf.Bytes())

	for _, slug := range repo.ListAllIdentifiers() {
		p, ok := repo.GetByIdentifier(slug)
		if !ok {
			return nil, fmt.Errorf("post %q listed but not found", slug)
		}
		buf.Reset()
		if err := pages.Post(&buf, p); err != nil {
			return nil, fmt.Errorf("render post %s: %w", slug, err)
		}
		files[pagePath(site.BlogPath, string(slug))] = clone(buf.Bytes())
	}

	buf.Reset()
	if err := pages.NotFound(&buf); err != nil {
		return nil, fmt.Errorf("render 404: %w", err)
	}
	files["404.html"] = clone(buf.Bytes())

	buf.Reset()
	if err := sitemap.Write(&buf, sitemap.Entries(summaries, site.BaseURL, site.BlogPath)); err != nil {
		return nil, fmt.Errorf("render sitemap: %w", err)
	}
	files["sitemap.xml"] = clone(buf.Bytes())

	imgs, err := renderImages(repo, images)
	if err != nil {
		return nil, err
	}
	for p, data := range imgs {
		files[p] = data
	}

	return &Bundle{files: files}, nil
}

type imageFile struct {
	path string
	data []byte
}

// renderImages draws the preview images concurrently. PNG encoding dominates
// export time.
func renderImages(repo *content.Repository, images *ogimage.Renderer) (map[string][]byte, error) {
	p := pool.NewWithResults[imageFile]().WithErrors().WithMaxGoroutines(runtime.GOMAXPROCS(0))
	p.Go(func() (imageFile, error) {
		var buf bytes.Buffer
		if err := images.Fallback(&buf); err != nil {
			return imageFile{}, fmt.Errorf("render default image: %w", err)
		}
		return imageFile{path: "og/" + ogimage.FallbackName, data: buf.Bytes()}, nil
	})
	for _, slug := range repo.ListAllIdentifiers() {
		preview, ok := repo.GetPreview(slug)
		if !ok {
			continue
		}
		slug, preview := slug, preview
		p.Go(func() (imageFile, error) {
			var buf bytes.Buffer
			if err := images.Render(&buf, preview); err != nil {
				return imageFile{}, fmt.Errorf("render image %s: %w", slug, err)
			}
			return imageFile{path: imagePath(slug), data: buf.Bytes()}, nil
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(results))
	for _, r := range results {
		out[r.path] = r.data
	}
	return out, nil
}

// Write writes every file in bundle under outputDir. Files are written in
// sorted path order so repeated runs produce identical trees.
func Write(fs afero.Fs, bundle *Bundle, outputDir string) error {
	if err := fs.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", outputDir, err)
	}
	for _, p := range bundle.Paths() {
		abs := path.Join(toSlash(outputDir), p)
		if err := writeFile(fs, abs, bundle.files[p]); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// pagePath returns the index.html path for a page under the blog path.
func pagePath(blogPath string, elem ...string) string {
	parts := append([]string{strings.Trim(blogPath, "/")}, elem...)
	parts = append(parts, "index.html")
	return path.Join(parts...)
}

func imagePath(slug post.Slug) string {
	return "og/" + string(slug) + ".png"
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// writeFile writes data to p, creating parent directories as needed.
func writeFile(fs afero.Fs, p string, data []byte) error {
	if err := fs.MkdirAll(path.Dir(p), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path.Dir(p), err)
	}
	if err := afero.WriteFile(fs, p, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}
