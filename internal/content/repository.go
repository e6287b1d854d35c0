// Package content builds and owns the blog collection.
//
// Load scans a content root once, parses every markdown/MDX file, derives the
// computed fields and keeps the valid posts sorted newest first. Files that
// fail to parse or validate are dropped with a warning; only a missing or
// unreadable root is fatal. The resulting Repository is immutable and safe
// for concurrent readers.
package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"

	"folio/internal/derive"
	"folio/internal/frontmatter"
	"folio/internal/logger"
	"folio/internal/markdown"
	"folio/internal/metrics"
	"folio/internal/post"
)

// DefaultExtensions are the recognized source file extensions.
var DefaultExtensions = []string{".md", ".mdx"}

// Options configures Load. Only Root is required.
type Options struct {
	// Fs defaults to the host filesystem.
	Fs   afero.Fs
	Root string
	// Extensions are matched case-insensitively. Defaults to DefaultExtensions.
	Extensions []string
	// Ignore lists glob rules for file names to skip.
	Ignore        []string
	DefaultAuthor string
	ExcerptLength int
	Logger        logger.Logger
	Metrics       *metrics.Metrics
}

// WarningKind classifies why a file was excluded.
type WarningKind string

const (
	WarnMalformed WarningKind = "malformed"
	WarnCollision WarningKind = "collision"
)

// Warning records a source file excluded from the collection.
type Warning struct {
	Kind   WarningKind
	Path   string
	Reason string
	// Conflict is the path that kept the slug, for collisions.
	Conflict string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Reason)
}

// Repository is the validated, sorted, read-only post collection.
type Repository struct {
	posts    []post.Post
	bySlug   map[post.Slug]int
	warnings []Warning
}

type candidate struct {
	path    string
	slug    string
	slugErr error
	mdx     bool
}

type parsed struct {
	post post.Post
	err  error
}

// Load scans opts.Root and builds the collection. It returns a *post.RootError
// when the root is missing, unreadable or not a directory; problems with
// individual files never fail the load.
func Load(ctx context.Context, opts Options) (*Repository, error) {
	start := time.Now()
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With(logger.String("root", opts.Root))

	names, err := listSources(fs, opts.Root, opts.Extensions, opts.Ignore)
	if err != nil {
		return nil, err
	}

	repo := &Repository{bySlug: make(map[post.Slug]int, len(names))}

	candidates := make([]candidate, len(names))
	for i, name := range names {
		slug, err := derive.SlugFromPath(name)
		candidates[i] = candidate{
			path:    filepath.Join(opts.Root, name),
			slug:    slug,
			slugErr: err,
			mdx:     strings.EqualFold(filepath.Ext(name), ".mdx"),
		}
	}

	md := markdown.New()
	dopts := derive.Options{DefaultAuthor: opts.DefaultAuthor, ExcerptLength: opts.ExcerptLength}
	results := iter.Map(candidates, func(c *candidate) parsed {
		if err := ctx.Err(); err != nil {
			return parsed{err: err}
		}
		if c.slugErr != nil {
			return parsed{err: post.Malformed(c.path, "invalid file name", c.slugErr)}
		}
		p, err := parseFile(fs, md, *c, dopts)
		return parsed{post: p, err: err}
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", opts.Root, err)
	}

	owner := make(map[post.Slug]string, len(results))
	for i, res := range results {
		c := candidates[i]
		if res.err != nil {
			repo.warn(log, Warning{Kind: WarnMalformed, Path: c.path, Reason: reason(res.err)})
			continue
		}
		slug := res.post.Slug
		if first, taken := owner[slug]; taken {
			repo.warn(log, Warning{
				Kind:     WarnCollision,
				Path:     c.path,
				Reason:   fmt.Sprintf("slug %q already used by %s", slug, first),
				Conflict: first,
			})
			continue
		}
		owner[slug] = c.path
		repo.posts = append(repo.posts, res.post)
	}

	sort.SliceStable(repo.posts, func(i, j int) bool {
		a, b := repo.posts[i].Metadata.Published, repo.posts[j].Metadata.Published
		if !a.Equal(b) {
			return a.After(b)
		}
		return repo.posts[i].Slug < repo.posts[j].Slug
	})
	for i, p := range repo.posts {
		repo.bySlug[p.Slug] = i
	}

	if opts.Metrics != nil {
		opts.Metrics.PostsLoaded.Set(float64(len(repo.posts)))
		opts.Metrics.LoadDuration.Observe(time.Since(start).Seconds())
		for _, w := range repo.warnings {
			opts.Metrics.LoadWarnings.WithLabelValues(string(w.Kind)).Inc()
		}
	}
	log.Info("content loaded",
		logger.Int("posts", len(repo.posts)),
		logger.Int("warnings", len(repo.warnings)),
		logger.Duration("duration", time.Since(start)),
	)
	return repo, nil
}

// listSources returns the names of source files directly inside root, sorted.
func listSources(fs afero.Fs, root string, exts, ignore []string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, &post.RootError{Root: root, Err: errors.New("no content root configured")}
	}
	info, err := fs.Stat(root)
	if err != nil {
		return nil, &post.RootError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &post.RootError{Root: root, Err: errors.New("not a directory")}
	}
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, &post.RootError{Root: root, Err: err}
	}

	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var names []string
	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}
		name := e.Name()
		if !hasExtension(name, exts) || ignored(ignore, name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, want := range exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// parseFile reads, parses, validates and renders one source file.
func parseFile(fs afero.Fs, md *markdown.Renderer, c candidate, opts derive.Options) (post.Post, error) {
	data, err := afero.ReadFile(fs, c.path)
	if err != nil {
		return post.Post{}, post.Malformed(c.path, "read failed", err)
	}

	var meta frontmatter.PostMeta
	body, err := frontmatter.Parse(c.path, data, &meta)
	if err != nil {
		return post.Post{}, err
	}

	m, err := validate(c.path, meta)
	if err != nil {
		return post.Post{}, err
	}

	html, err := md.Render(body, c.mdx)
	if err != nil {
		return post.Post{}, post.Malformed(c.path, "render failed", err)
	}

	fields := derive.Compute(derive.Input{
		HTML:    html,
		Title:   meta.Title,
		Excerpt: meta.Excerpt,
		Author:  meta.Author,
		Tags:    meta.Tags,
	}, opts)
	m.Excerpt = fields.Excerpt
	m.Author = fields.Author
	m.Tags = fields.Tags

	return post.Post{
		Slug:        post.Slug(c.slug),
		Metadata:    m,
		HTML:        html,
		ReadingTime: fields.ReadingTime,
		SourcePath:  c.path,
	}, nil
}

// validate checks required fields and parses dates.
func validate(path string, meta frontmatter.PostMeta) (post.Metadata, error) {
	if strings.TrimSpace(meta.Title) == "" {
		return post.Metadata{}, post.Malformed(path, "missing title", nil)
	}
	if strings.TrimSpace(meta.Date) == "" {
		return post.Metadata{}, post.Malformed(path, "missing date", nil)
	}
	published, err := derive.ParseDate(meta.Date)
	if err != nil {
		return post.Metadata{}, post.Malformed(path, fmt.Sprintf("unparseable date %q", meta.Date), err)
	}

	out := post.Metadata{
		Title:     meta.Title,
		Date:      meta.Date,
		Published: published,
	}
	if strings.TrimSpace(meta.Updated) != "" {
		updated, err := derive.ParseDate(meta.Updated)
		if err != nil {
			return post.Metadata{}, post.Malformed(path, fmt.Sprintf("unparseable updated date %q", meta.Updated), err)
		}
		out.Updated = meta.Updated
		out.UpdatedAt = updated
	}
	return out, nil
}

// reason renders err for a warning without repeating the path.
func reason(err error) string {
	var md *post.MalformedDocumentError
	if errors.As(err, &md) {
		if md.Err != nil {
			return fmt.Sprintf("%s: %v", md.Reason, md.Err)
		}
		return md.Reason
	}
	if errors.Is(err, os.ErrNotExist) {
		return "file disappeared during load"
	}
	return err.Error()
}

func (r *Repository) warn(log logger.Logger, w Warning) {
	r.warnings = append(r.warnings, w)
	fields := []logger.Field{
		logger.String("path", w.Path),
		logger.String("kind", string(w.Kind)),
		logger.String("reason", w.Reason),
	}
	if w.Conflict != "" {
		fields = append(fields, logger.String("conflict", w.Conflict))
	}
	log.Warn("excluded source file", fields...)
}
