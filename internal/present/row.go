// Package present maps search results to what a list row displays.
package present

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/runger/movie-explorer/internal/omdb"
	"github.com/runger/movie-explorer/internal/search"
)

// Placeholders shown when the provider left a field empty.
const (
	UntitledText  = "Untitled"
	UnknownYear   = "UNKNOWN"
	FallbackGlyph = "?"
)

// Row is the display form of one search.Item.
type Row struct {
	Key       string // Stable list key (the item id)
	ImageURL  string // "" when there is no poster to show
	Glyph     string // Drawn instead of the poster when ImageURL is ""
	Primary   string // Title line
	Secondary string // Year line
	Category  string // Upper-cased type label, may be ""
}

// HasImage reports whether the row has a poster to show.
func (r Row) HasImage() bool {
	return r.ImageURL != ""
}

// NewRow builds the row for item.
func NewRow(item search.Item) Row {
	title := strings.TrimSpace(Clean(item.Title))
	year := strings.TrimSpace(Clean(item.Year))

	row := Row{
		Key:       item.ID,
		ImageURL:  imageURL(item.ImageRef),
		Glyph:     glyph(title),
		Primary:   title,
		Secondary: year,
		Category:  strings.ToUpper(strings.TrimSpace(Clean(item.Category))),
	}
	if row.Primary == "" {
		row.Primary = UntitledText
	}
	if row.Secondary == "" {
		row.Secondary = UnknownYear
	}
	return row
}

// NewRows builds rows for items, preserving order.
func NewRows(items []search.Item) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, NewRow(item))
	}
	return rows
}

// glyph is the upper-cased first rune of an already trimmed title.
func glyph(title string) string {
	r, _ := utf8.DecodeRuneInString(title)
	if title == "" || r == utf8.RuneError {
		return FallbackGlyph
	}
	return string(unicode.ToUpper(r))
}

func imageURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == omdb.NoPoster {
		return ""
	}
	return ref
}
