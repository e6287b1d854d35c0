// Package post defines the blog data model shared by the loader and every
// consumer: identifiers, metadata, full posts, summaries and previews.
package post

import "time"

// Slug is the URL-safe identifier of a post, derived from its source file name.
type Slug string

// String returns the slug as a plain string.
func (s Slug) String() string { return string(s) }

// Metadata holds the author-supplied facts about a post after defaults have
// been applied.
type Metadata struct {
	Title string
	// Date is the publication date exactly as written in the front matter.
	Date string
	// Published is Date parsed as a calendar date in UTC. Used for sorting.
	Published time.Time
	Excerpt   string
	Author    string
	Tags      []string
	// Updated is the optional last-modified date as written; empty when absent.
	Updated   string
	UpdatedAt time.Time
}

// LastModified returns UpdatedAt when the post declares one, Published otherwise.
func (m Metadata) LastModified() time.Time {
	if !m.UpdatedAt.IsZero() {
		return m.UpdatedAt
	}
	return m.Published
}

// clone returns a copy of m that shares no slices with the original.
func (m Metadata) clone() Metadata {
	out := m
	out.Tags = make([]string, len(m.Tags))
	copy(out.Tags, m.Tags)
	return out
}

// Post is a fully materialized post: metadata, rendered body and reading time.
type Post struct {
	Slug     Slug
	Metadata Metadata
	// HTML is the body rendered from markdown at load time.
	HTML        string
	ReadingTime int
	SourcePath  string
}

// Summary is a Post without its body, used for listings.
type Summary struct {
	Slug        Slug
	Metadata    Metadata
	ReadingTime int
}

// Preview is the restricted metadata view used for social preview images.
type Preview struct {
	Title  string
	Date   string
	Author string
	Tags   []string
}

// Clone returns a deep copy of p.
func (p Post) Clone() Post {
	out := p
	out.Metadata = p.Metadata.clone()
	return out
}

// Summary returns the listing view of p.
func (p Post) Summary() Summary {
	return Summary{
		Slug:        p.Slug,
		Metadata:    p.Metadata.clone(),
		ReadingTime: p.ReadingTime,
	}
}

// Preview returns the metadata-only view of p.
func (p Post) Preview() Preview {
	tags := make([]string, len(p.Metadata.Tags))
	copy(tags, p.Metadata.Tags)
	return Preview{
		Title:  p.Metadata.Title,
		Date:   p.Metadata.Date,
		Author: p.Metadata.Author,
		Tags:   tags,
	}
}
