package derive

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists elements whose text must not run into the next block.
const blockSelector = "p, h1, h2, h3, h4, h5, h6, li, dt, dd, blockquote, pre, td, th, tr, br, hr, div, section, article, figcaption"

// PlainText strips markup from rendered HTML and collapses whitespace to
// single spaces.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapse(html)
	}
	doc.Find("script, style").Remove()
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return collapse(doc.Text())
}

// WordCount returns the number of whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
