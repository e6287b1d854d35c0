// Package sitemap emits the sitemap entries for published posts.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"

	"folio/internal/post"
)

// dateOnlyFormat is the date-only layout for sitemap lastmod values (e.g. "2024-01-15").
const dateOnlyFormat = "2006-01-02"

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Entry is one (url, last-modified) pair.
type Entry struct {
	Loc     string
	LastMod string
}

// xmlURLSet is the root element of a standard sitemap XML file.
type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

// xmlURL is a single <url> entry inside a <urlset>.
type xmlURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Entries builds one entry per summary, in listing order. Loc is baseURL +
// blogPath + "/" + slug; LastMod is the post's updated date when it has one,
// its publication date otherwise.
func Entries(posts []post.Summary, baseURL, blogPath string) []Entry {
	out := make([]Entry, 0, len(posts))
	for _, p := range posts {
		out = append(out, Entry{
			Loc:     baseURL + blogPath + "/" + string(p.Slug),
			LastMod: p.Metadata.LastModified().Format(dateOnlyFormat),
		})
	}
	return out
}

// Write encodes entries as sitemap protocol XML.
func Write(w io.Writer, entries []Entry) error {
	set := xmlURLSet{Xmlns: xmlns, URLs: make([]xmlURL, len(entries))}
	for i, e := range entries {
		set.URLs[i] = xmlURL{Loc: e.Loc, LastMod: e.LastMod}
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
