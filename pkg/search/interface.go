// Package search is the query engine: prefix lookup over a loaded lexicon,
// ghost suffixes, rendered descriptions and clickable-word meanings.
package search

import "github.com/bastiangx/lexserve/pkg/lexicon"

// Searcher is what a presentation layer drives. Engine implements it.
type Searcher interface {
	// OnQueryChanged is called with the current input value on every change.
	OnQueryChanged(text string) Result

	// OnSearchableClicked follows a searchable span of a rendered description.
	OnSearchableClicked(text string) Result

	// OnWordClicked picks one meaning group of a clickable word at random.
	OnWordClicked(word string) (lexicon.MeaningGroup, bool)

	// MeaningMarkup renders a meaning group for display.
	MeaningMarkup(group lexicon.MeaningGroup) string

	// Stats returns counters about the loaded lexicon.
	Stats() map[string]int
}
