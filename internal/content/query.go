package content

import (
	"sort"

	"folio/internal/post"
)

// ListAll returns every post summary, newest first. Each call returns a fresh
// copy.
func (r *Repository) ListAll() []post.Summary {
	out := make([]post.Summary, len(r.posts))
	for i, p := range r.posts {
		out[i] = p.Summary()
	}
	return out
}

// ListAllIdentifiers returns every slug in the collection. The result is a
// set; it is sorted only so output is reproducible.
func (r *Repository) ListAllIdentifiers() []post.Slug {
	out := make([]post.Slug, 0, len(r.bySlug))
	for slug := range r.bySlug {
		out = append(out, slug)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GetByIdentifier returns the full post for slug. ok is false when no post
// has that slug.
func (r *Repository) GetByIdentifier(slug post.Slug) (p post.Post, ok bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return post.Post{}, false
	}
	return r.posts[i].Clone(), true
}

// GetPreview returns the metadata-only view of a post for preview images.
func (r *Repository) GetPreview(slug post.Slug) (post.Preview, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return post.Preview{}, false
	}
	return r.posts[i].Preview(), true
}

// Len returns the number of posts.
func (r *Repository) Len() int {
	return len(r.posts)
}

// Warnings returns the files excluded during Load, in the order they were
// encountered.
func (r *Repository) Warnings() []Warning {
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}
