// Package search turns a committed search phrase into catalog lookups and
// publishes the outcome as State.
package search

import (
	"strings"

	"github.com/runger/movie-explorer/internal/omdb"
)

// Item is one title found by a search.
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Year     string `json:"year"`
	Category string `json:"category"`
	ImageRef string `json:"image_ref"`
}

// State is the observable output of a Controller.
//
// Results is shared between snapshots and must not be modified.
type State struct {
	Phrase       string // Committed phrase this state belongs to ("" when idle)
	Results      []Item // Provider order
	IsLoading    bool   // Current attempt outstanding
	ErrorMessage string // "" when there is nothing to report
	Version      uint64 // Bumped on every mutation
}

// HasError reports whether the state carries an error message.
func (s State) HasError() bool {
	return s.ErrorMessage != ""
}

// Normalize trims a raw phrase. The empty result means "no active search".
func Normalize(phrase string) string {
	return strings.TrimSpace(phrase)
}

func itemFromRecord(r omdb.Record) Item {
	return Item{
		ID:       r.ImdbID,
		Title:    r.Title,
		Year:     r.Year,
		Category: r.Type,
		ImageRef: r.Poster,
	}
}

func itemsFromRecords(records []omdb.Record) []Item {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, itemFromRecord(r))
	}
	return items
}
