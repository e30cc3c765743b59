package present

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/runger/movie-explorer/internal/search"
)

func newItem(overrides func(*search.Item)) search.Item {
	item := search.Item{
		ID:       "id-123",
		Title:    "Batman Begins",
		Year:     "2005",
		Category: "movie",
		ImageRef: "poster.jpg",
	}
	if overrides != nil {
		overrides(&item)
	}
	return item
}

func TestNewRow_RendersTitleYearAndCategory(t *testing.T) {
	row := NewRow(newItem(nil))

	assert.Equal(t, "id-123", row.Key)
	assert.Equal(t, "Batman Begins", row.Primary)
	assert.Equal(t, "2005", row.Secondary)
	assert.Equal(t, "MOVIE", row.Category)
	assert.Equal(t, "poster.jpg", row.ImageURL)
	assert.True(t, row.HasImage())
	assert.Equal(t, "B", row.Glyph)
}

func TestNewRow_FallbackInitialWhenPosterUnavailable(t *testing.T) {
	row := NewRow(newItem(func(i *search.Item) {
		i.Title = "Guardians"
		i.ImageRef = "N/A"
	}))

	assert.False(t, row.HasImage())
	assert.Equal(t, "G", row.Glyph)
}

func TestNewRow_QuestionMarkWhenTitleEmpty(t *testing.T) {
	row := NewRow(newItem(func(i *search.Item) {
		i.Title = "   "
		i.ImageRef = "N/A"
		i.Year = ""
		i.Category = ""
	}))

	assert.Equal(t, "?", row.Glyph)
	assert.Equal(t, "Untitled", row.Primary)
	assert.Equal(t, "UNKNOWN", row.Secondary)
	assert.Empty(t, row.Category)
}

func TestNewRow_Glyph(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"guardians", "G"},
		{"  alien", "A"},
		{"élite", "É"},
		{"8 mile", "8"},
		{"", "?"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			row := NewRow(newItem(func(i *search.Item) { i.Title = tt.title }))
			assert.Equal(t, tt.want, row.Glyph)
		})
	}
}

func TestNewRow_BlankPosterHasNoImage(t *testing.T) {
	row := NewRow(newItem(func(i *search.Item) { i.ImageRef = "  " }))
	assert.False(t, row.HasImage())
}

func TestNewRow_CleansProviderText(t *testing.T) {
	row := NewRow(newItem(func(i *search.Item) {
		i.Title = "\x1b[31mRed\x1b[0m Dawn\x07"
		i.Year = "19\xff84"
	}))

	assert.Equal(t, "Red Dawn", row.Primary)
	assert.Equal(t, "19�84", row.Secondary)
}

func TestNewRows_PreservesOrder(t *testing.T) {
	rows := NewRows([]search.Item{
		{ID: "b", Title: "Second"},
		{ID: "a", Title: "First"},
	})

	assert.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].Key)
	assert.Equal(t, "a", rows[1].Key)
	assert.Empty(t, NewRows(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Batman", Truncate("Batman", 10))
	assert.Equal(t, "Batm…", Truncate("Batman Begins", 5))
	assert.Equal(t, "…", Truncate("Batman", 1))
	assert.Equal(t, "", Truncate("Batman", 0))

	// Wide runes take two columns each.
	got := Truncate("千と千尋の神隠し", 7)
	assert.LessOrEqual(t, runewidth.StringWidth(got), 7)
	assert.Equal(t, "千と千…", got)
}
