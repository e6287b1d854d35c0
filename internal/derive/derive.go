// Package derive computes the presentation fields of a post that authors do
// not write by hand: plain text, reading time, excerpt, slug and parsed dates.
package derive

import "strings"

const (
	// WordsPerMinute is the reading speed used for reading-time estimates.
	WordsPerMinute = 200
	// DefaultExcerptLength is the maximum length, in characters, of a computed excerpt.
	DefaultExcerptLength = 150
	// DefaultAuthor is used when neither the post nor the configuration names one.
	DefaultAuthor = "Editorial Team"
)

// Input is what the computer needs from a parsed document.
type Input struct {
	// HTML is the rendered body.
	HTML    string
	// Title stands in for the excerpt when the body's first word is too
	// long to fit.
	Title   string
	Excerpt string
	Author  string
	Tags    []string
}

// Options tunes Compute. Zero values select the package defaults.
type Options struct {
	DefaultAuthor string
	ExcerptLength int
}

// Fields are the computed values for one post.
type Fields struct {
	ReadingTime int
	Excerpt     string
	Author      string
	Tags        []string
}

// Compute fills in the fields the author left out. Supplied excerpts and
// authors are kept verbatim; tags keep their order and duplicates.
func Compute(in Input, opts Options) Fields {
	text := PlainText(in.HTML)

	excerpt := in.Excerpt
	if strings.TrimSpace(excerpt) == "" {
		excerpt = Excerpt(text, opts.ExcerptLength)
		if excerpt == "" {
			excerpt = Excerpt(in.Title, opts.ExcerptLength)
		}
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = opts.DefaultAuthor
	}
	if author == "" {
		author = DefaultAuthor
	}

	tags := make([]string, len(in.Tags))
	copy(tags, in.Tags)

	return Fields{
		ReadingTime: ReadingTime(text),
		Excerpt:     excerpt,
		Author:      author,
		Tags:        tags,
	}
}
