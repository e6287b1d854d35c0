// Package render turns posts into HTML pages. It is the page renderer shared
// by the HTTP server and the static exporter.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"folio/internal/post"
)

//go:embed templates/*.html
var templateFS embed.FS

// Site is the site-wide information every page needs.
type Site struct {
	Name     string
	BaseURL  string
	BlogPath string
}

// Renderer executes the page templates.
type Renderer struct {
	site Site
	tmpl *template.Template
}

type page struct {
	Site        Site
	Title       string
	Description string
	Image       string
	Posts       []post.Summary
	Post        post.Post
	Body        template.HTML
}

// New parses the embedded templates.
func New(site Site) (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"postPath": func(s Site, slug post.Slug) string { return s.BlogPath + "/" + string(slug) },
		"isoDate":  func(t time.Time) string { return t.Format("2006-01-02") },
		"longDate": func(t time.Time) string { return t.Format("January 2, 2006") },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{site: site, tmpl: tmpl}, nil
}

// Index renders the post listing.
func (r *Renderer) Index(w io.Writer, posts []post.Summary) error {
	return r.exec(w, "index", page{
		Site:  r.site,
		Title: "Blog",
		Posts: posts,
	})
}

// Post renders a single post. The body was rendered from markdown at load
// time and is emitted without escaping.
func (r *Renderer) Post(w io.Writer, p post.Post) error {
	return r.exec(w, "post", page{
		Site:        r.site,
		Title:       p.Metadata.Title,
		Description: p.Metadata.Excerpt,
		Image:       r.site.BaseURL + "/og/" + string(p.Slug) + ".png",
		Post:        p,
		Body:        template.HTML(p.HTML),
	})
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound(w io.Writer) error {
	return r.exec(w, "notfound", page{Site: r.site, Title: "Not found"})
}

func (r *Renderer) exec(w io.Writer, name string, data page) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
