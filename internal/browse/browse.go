// Package browse is a terminal browser for the post collection: a filterable
// list of posts, newest first, with a scrollable detail view.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/content"
	"folio/internal/derive"
	"folio/internal/post"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// item adapts a post summary to list.DefaultItem.
type item struct {
	summary post.Summary
}

func (i item) Title() string { return i.summary.Metadata.Title }

func (i item) Description() string {
	m := i.summary.Metadata
	return fmt.Sprintf("%s · %s · %d min read", m.Published.Format("2006-01-02"), m.Author, i.summary.ReadingTime)
}

func (i item) FilterValue() string {
	return i.summary.Metadata.Title + " " + strings.Join(i.summary.Metadata.Tags, " ")
}

// Model is the bubbletea model for the browser.
type Model struct {
	repo     *content.Repository
	list     list.Model
	detail   viewport.Model
	selected *post.Post
	width    int
	height   int
}

// New returns a browser over repo.
func New(repo *content.Repository) Model {
	summaries := repo.ListAll()
	items := make([]list.Item, len(summaries))
	for i, s := range summaries {
		items[i] = item{summary: s}
	}
	l := list.New(items, list.NewDefaultDelegate(), defaultWidth, defaultHeight)
	l.Title = fmt.Sprintf("Posts (%d)", len(items))
	return Model{
		repo:   repo,
		list:   l,
		detail: viewport.New(defaultWidth, defaultHeight-2),
		width:  defaultWidth,
		height: defaultHeight,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		m.detail.Width = msg.Width
		m.detail.Height = msg.Height - 2
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.selected != nil {
			return m.updateDetail(msg)
		}
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "enter":
				return m.open(), nil
			}
		}
	}

	var cmd tea.Cmd
	if m.selected != nil {
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.selected = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// open switches to the detail view for the highlighted post.
func (m Model) open() Model {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return m
	}
	p, ok := m.repo.GetByIdentifier(it.summary.Slug)
	if !ok {
		return m
	}
	m.selected = &p
	m.detail.SetContent(detailText(p, m.width))
	m.detail.GotoTop()
	return m
}

func (m Model) View() string {
	if m.selected != nil {
		return m.detail.View() + "\n\nesc back · q quit"
	}
	return m.list.View()
}

// detailText lays out a post for the detail view, wrapped to width.
func detailText(p post.Post, width int) string {
	var b strings.Builder
	md := p.Metadata
	b.WriteString(md.Title + "\n")
	b.WriteString(strings.Repeat("=", min(len([]rune(md.Title)), width)) + "\n\n")
	fmt.Fprintf(&b, "%s · %s · %d min read\n", md.Date, md.Author, p.ReadingTime)
	if len(md.Tags) > 0 {
		b.WriteString("tags: " + strings.Join(md.Tags, ", ") + "\n")
	}
	b.WriteString("slug: " + string(p.Slug) + "\n\n")
	b.WriteString(wrap(derive.PlainText(p.HTML), width))
	return b.String()
}

// wrap breaks text on spaces so no line exceeds width runes unless a single
// word does.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var b strings.Builder
	n := 0
	for _, w := range strings.Fields(text) {
		l := len([]rune(w))
		switch {
		case n == 0:
		case n+1+l > width:
			b.WriteByte('\n')
			n = 0
		default:
			b.WriteByte(' ')
			n++
		}
		b.WriteString(w)
		n += l
	}
	return b.String()
}

// Run starts the browser in the alternate screen and blocks until it exits.
func Run(repo *content.Repository, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(New(repo), opts...).Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
