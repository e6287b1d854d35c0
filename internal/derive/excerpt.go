package derive

import (
	"strings"
	"unicode"
)

// Ellipsis marks a truncated excerpt.
const Ellipsis = "..."

// Excerpt returns at most max characters of text. Text that already fits is
// returned whole. Longer text is cut back to the last word boundary inside
// the budget and Ellipsis is appended; the marker counts toward max. A first
// word longer than the budget yields "".
func Excerpt(text string, max int) string {
	if max <= 0 {
		max = DefaultExcerptLength
	}
	text = collapse(text)
	r := []rune(text)
	if len(r) <= max {
		return text
	}

	budget := max - len([]rune(Ellipsis))
	if budget <= 0 {
		return ""
	}

	cut := budget
	if !unicode.IsSpace(r[budget]) {
		cut = -1
		for i := budget - 1; i >= 0; i-- {
			if unicode.IsSpace(r[i]) {
				cut = i
				break
			}
		}
		if cut < 0 {
			return ""
		}
	}

	prefix := strings.TrimRightFunc(string(r[:cut]), unicode.IsSpace)
	if prefix == "" {
		return ""
	}
	return prefix + Ellipsis
}
