package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runger/movie-explorer/internal/omdb"
	"github.com/runger/movie-explorer/internal/present"
)

// Text shown on the search screen.
const (
	appTitle       = "Movie Explorer"
	formHeading    = "Search movies"
	resultsHeading = "Search results"
	idleHint       = "Results will appear here after you search for a movie."
	searchingText  = "Searching..."
	posterMarker   = "▤"
)

// chrome is the number of lines around the result list on the search screen:
// app bar, blank, heading, input, blank, results heading, status, help.
const chrome = 8

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.AppBar.Render(appTitle))
	b.WriteString("\n\n")

	if m.screen == screenDetails {
		b.WriteString(m.viewDetails())
	} else {
		b.WriteString(m.viewSearch())
	}

	b.WriteString("\n\n")
	b.WriteString(m.viewHelp())
	return b.String()
}

// viewSearch renders the form, results heading and body.
func (m Model) viewSearch() string {
	var b strings.Builder

	b.WriteString(m.theme.Heading.Render(formHeading))
	b.WriteRune('\n')
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.theme.Heading.Render(m.resultsHeading()))
	b.WriteRune('\n')
	b.WriteString(m.viewBody())

	return b.String()
}

func (m Model) resultsHeading() string {
	if m.state.Phrase == "" {
		return resultsHeading
	}
	return fmt.Sprintf("Results for %q", present.Clean(m.state.Phrase))
}

// viewBody renders, in order of precedence, the error alert, the result
// list, the no-match notice or the idle hint. The spinner line sits on top
// while a lookup is outstanding.
func (m Model) viewBody() string {
	var parts []string

	if m.state.IsLoading {
		parts = append(parts, m.spinner.View()+" "+m.theme.Dim.Render(searchingText))
	}

	switch {
	case m.state.HasError():
		parts = append(parts, m.theme.Error.Render(present.Clean(m.state.ErrorMessage)))
	case len(m.rows) > 0:
		parts = append(parts, m.viewList())
	case m.state.IsLoading:
	case m.state.Phrase != "":
		parts = append(parts, m.theme.Dim.Render(
			fmt.Sprintf("No matches for %q. Try another title.", present.Clean(m.state.Phrase)),
		))
	default:
		parts = append(parts, m.theme.Dim.Render(idleHint))
	}

	return strings.Join(parts, "\n")
}

// viewList renders the visible window of rows around the selection.
func (m Model) viewList() string {
	start, end := m.visibleRange()

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.viewRow(m.rows[i], i == m.selection))
	}
	return strings.Join(lines, "\n")
}

// viewRow renders one result: poster marker or glyph, title, year, category.
func (m Model) viewRow(row present.Row, selected bool) string {
	marker := "  "
	titleStyle := m.theme.Normal
	if selected {
		marker = m.theme.Selected.Render("> ")
		titleStyle = m.theme.Selected
	}

	art := m.theme.Glyph.Render(row.Glyph)
	if row.HasImage() {
		art = m.theme.Poster.Render(posterMarker)
	}

	meta := m.theme.Secondary.Render(row.Secondary)
	if row.Category != "" {
		meta += " " + m.theme.Category.Render(row.Category)
	}

	// marker + art + spaces + meta
	used := 2 + 3 + 2 + lipgloss.Width(meta)
	title := row.Primary
	if m.width > 0 {
		title = present.Truncate(title, m.width-used-1)
	}

	return marker + art + " " + titleStyle.Render(title) + " " + meta
}

// visibleRange returns the [start, end) window of rows that fits the
// terminal, keeping the selection in view.
func (m Model) visibleRange() (int, int) {
	n := len(m.rows)
	h := m.listHeight()
	if n <= h {
		return 0, n
	}
	start := 0
	if m.selection >= h {
		start = m.selection - h + 1
	}
	return start, start + h
}

// listHeight returns the number of visible list rows.
func (m Model) listHeight() int {
	h := m.height - chrome
	if h < 1 {
		h = 10 // Sensible default before first WindowSizeMsg
	}
	return h
}

// viewDetails renders the details screen.
func (m Model) viewDetails() string {
	var b strings.Builder

	b.WriteString(m.theme.Heading.Render(m.detailRow.Primary))
	b.WriteString(" ")
	b.WriteString(m.theme.Secondary.Render(m.detailRow.Secondary))
	b.WriteRune('\n')

	switch {
	case m.detailLoading:
		b.WriteString(m.spinner.View() + " " + m.theme.Dim.Render("Loading details..."))
	case m.detailErr != "":
		b.WriteString(m.theme.Error.Render(present.Clean(m.detailErr)))
	case m.detail != nil:
		b.WriteString(m.viewTitle(m.detail))
	}
	return b.String()
}

// viewTitle renders the fields of a loaded title. Fields the catalog
// reports as "N/A" are omitted.
func (m Model) viewTitle(t *omdb.TitleResponse) string {
	var lines []string

	var facts []string
	for _, v := range []string{t.Rated, t.Runtime, t.Genre} {
		if v = field(v); v != "" {
			facts = append(facts, v)
		}
	}
	if len(facts) > 0 {
		lines = append(lines, m.theme.Secondary.Render(strings.Join(facts, " · ")))
	}
	if v := field(t.Released); v != "" {
		lines = append(lines, m.theme.Label.Render("Released: ")+v)
	}
	if v := field(t.Director); v != "" {
		lines = append(lines, m.theme.Label.Render("Director: ")+v)
	}
	if v := field(t.Actors); v != "" {
		lines = append(lines, m.theme.Label.Render("Actors: ")+v)
	}
	if v := field(t.Plot); v != "" {
		plot := lipgloss.NewStyle()
		if m.width > 4 {
			plot = plot.Width(m.width - 2)
		}
		lines = append(lines, "", plot.Render(v))
	}
	return strings.Join(lines, "\n")
}

// field cleans a catalog value, mapping the "N/A" placeholder to "".
func field(v string) string {
	v = strings.TrimSpace(present.Clean(v))
	if v == omdb.NoPoster {
		return ""
	}
	return v
}

func (m Model) viewHelp() string {
	if m.screen == screenDetails {
		return m.theme.Help.Render("esc back • ctrl+r reload • ctrl+c quit")
	}
	if m.focus == focusList {
		return m.theme.Help.Render("↑/↓ move • enter details • tab search • ctrl+r refetch • esc quit")
	}
	return m.theme.Help.Render("enter search • tab results • ctrl+r refetch • esc quit")
}
