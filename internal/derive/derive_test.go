package derive

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = "word"
	}
	return strings.Join(w, " ")
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{199, 1},
		{200, 1},
		{201, 2},
		{400, 2},
		{600, 3},
		{601, 4},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ReadingTime(words(tc.words)), "words=%d", tc.words)
	}
}

func TestReadingTimeMonotonic(t *testing.T) {
	prev := 0
	for n := 0; n <= 1000; n += 7 {
		got := ReadingTime(words(n))
		require.GreaterOrEqual(t, got, 1)
		require.GreaterOrEqual(t, got, prev, "n=%d", n)
		prev = got
	}
}

func TestPlainTextStripsMarkup(t *testing.T) {
	html := "<h1 id=\"a\">Title</h1>\n<p>Some <em>bold</em> text<br />next</p><ul><li>one</li><li>two</li></ul><script>var x</script>"
	assert.Equal(t, "Title Some bold text next one two", PlainText(html))
}

func TestPlainTextEmpty(t *testing.T) {
	assert.Equal(t, "", PlainText("  \n"))
}

func TestExcerptShortTextWhole(t *testing.T) {
	assert.Equal(t, "A short body.", Excerpt("  A short\n body. ", 150))
}

func TestExcerptCutsAtWordBoundary(t *testing.T) {
	text := "alpha beta gamma delta"
	// budget = 12 - 3 = 9 -> "alpha bet" -> back to "alpha"
	assert.Equal(t, "alpha...", Excerpt(text, 12))
	// budget = 13 - 3 = 10, rune at 10 is a space -> "alpha beta"
	assert.Equal(t, "alpha beta...", Excerpt(text, 13))
}

func TestExcerptLongFirstWord(t *testing.T) {
	assert.Equal(t, "", Excerpt(strings.Repeat("x", 200), 150))
}

func TestExcerptIsPrefixAndBounded(t *testing.T) {
	texts := []string{
		words(600),
		"Ünïcödé text with accents " + words(100),
		strings.Repeat("ab cde fghij ", 40),
	}
	for _, text := range texts {
		for _, max := range []int{10, 50, 150} {
			got := Excerpt(text, max)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), max)
			trimmed := strings.TrimSuffix(got, Ellipsis)
			assert.True(t, strings.HasPrefix(collapse(text), trimmed), "excerpt %q not a prefix", got)
			if trimmed != "" {
				next := strings.TrimPrefix(collapse(text), trimmed)
				assert.True(t, next == "" || strings.HasPrefix(next, " "), "excerpt %q splits a word", got)
			}
		}
	}
}

func TestComputeDefaults(t *testing.T) {
	f := Compute(Input{HTML: "<p>" + words(600) + "</p>"}, Options{})
	assert.Equal(t, 3, f.ReadingTime)
	assert.Equal(t, DefaultAuthor, f.Author)
	assert.NotNil(t, f.Tags)
	assert.Empty(t, f.Tags)
	assert.NotEmpty(t, f.Excerpt)
	assert.LessOrEqual(t, utf8.RuneCountInString(f.Excerpt), DefaultExcerptLength)
}

func TestComputeKeepsSuppliedFields(t *testing.T) {
	f := Compute(Input{
		HTML:    "<p>body</p>",
		Excerpt: "Hand written.",
		Author:  "Ada",
		Tags:    []string{"b", "a", "b"},
	}, Options{DefaultAuthor: "School"})
	assert.Equal(t, "Hand written.", f.Excerpt)
	assert.Equal(t, "Ada", f.Author)
	assert.Equal(t, []string{"b", "a", "b"}, f.Tags)
}

func TestComputeConfiguredAuthor(t *testing.T) {
	f := Compute(Input{HTML: "<p>x</p>"}, Options{DefaultAuthor: "Riverside Academy"})
	assert.Equal(t, "Riverside Academy", f.Author)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"welcome", "welcome"},
		{"Hello World", "hello-world"},
		{"2026-01-06_open-day", "2026-01-06-open-day"},
		{"Café Crème", "cafe-creme"},
		{"--trim--me--", "trim-me"},
		{"a..b", "a-b"},
	}
	for _, tc := range tests {
		got, err := Slugify(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestSlugifyEmpty(t *testing.T) {
	_, err := Slugify("???")
	assert.ErrorIs(t, err, ErrEmptySlug)
}

func TestSlugFromPath(t *testing.T) {
	for _, p := range []string{"content/a.md", "content/a.mdx", "A.MD"} {
		got, err := SlugFromPath(p)
		require.NoError(t, err)
		assert.Equal(t, "a", got, p)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-01-06")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-06", d.Format("2006-01-02"))

	d, err = ParseDate("2026-01-06T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrEmptyDate)

	_, err = ParseDate("not a date")
	assert.Error(t, err)
}

func TestParseDateRejectsNonISO(t *testing.T) {
	for _, s := range []string{
		"Jan 6",
		"1234567890",
		"03/04/2026",
		"2024-13-01",
		"0000-01-06",
		"2024-01-15x",
		"6 January 2026",
	} {
		_, err := ParseDate(s)
		assert.ErrorIs(t, err, ErrNotISODate, s)
	}
}

func TestParseDateNormalizesToUTC(t *testing.T) {
	d, err := ParseDate("2024-01-15T10:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-01-15 10:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), d)
}

func TestComputeExcerptFallsBackToTitle(t *testing.T) {
	url := "https://example.org/" + strings.Repeat("a", 150)
	f := Compute(Input{
		HTML:  "<p>" + url + " is where the timetable lives.</p>",
		Title: "Where to find the timetable",
	}, Options{})
	assert.Equal(t, "Where to find the timetable", f.Excerpt)
}
