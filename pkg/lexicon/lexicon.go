/*
Package lexicon holds the in-memory word list served by lexserve.

A Lexicon is built once from a single document and never mutated afterwards.
The document is a mapping from headword to entry record, plus two reserved
tables:

	{
	  "ata":  {"a": "father figure"},
	  "atam": {"a": "my father"},
	  "specialWords":   {"anim.": "animal"},
	  "clickableWords": {"wolf": [["canine"], ["predator"]]}
	}

Entry records keep their description in field "a"; "description" is accepted
as an alias. Document order is preserved for entries and both tables, since
search tie-breaks and annotation passes depend on it.
*/
package lexicon

import (
	"errors"
)

// Reserved top-level keys of a lexicon document.
const (
	SpecialWordsKey   = "specialWords"
	ClickableWordsKey = "clickableWords"
)

var (
	// ErrMalformed is returned when a document cannot be decoded.
	ErrMalformed = errors.New("lexicon: malformed document")
	// ErrEmpty is returned when a document decodes but holds no entries.
	ErrEmpty = errors.New("lexicon: no entries")
	// ErrFetch is returned when the document source could not be retrieved.
	ErrFetch = errors.New("lexicon: fetch failed")
	// ErrUnsupportedFormat is returned for sources that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("lexicon: unsupported format")
)

// Entry is one headword and its record.
type Entry struct {
	// Headword is the key exactly as it appears in the source.
	Headword string
	// Description is free text; literal newlines render as line breaks.
	Description string
	// Order is the position of the headword in the source document.
	Order int
}

// SpecialWord marks the word that follows it with Label.
type SpecialWord struct {
	Word  string
	Label string
}

// MeaningGroup is an ordered list of lines shown together for a clickable word.
type MeaningGroup []string

// ClickableWord maps a surface word to its alternative meaning groups.
type ClickableWord struct {
	Word     string
	Meanings []MeaningGroup
}

// Lexicon is the immutable result of decoding a document.
type Lexicon struct {
	entries    []Entry
	index      map[string]int
	special    []SpecialWord
	clickable  []ClickableWord
	clickIndex map[string]int
}

// Len returns the number of entries, excluding the reserved tables.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries returns the entries in document order.
func (l *Lexicon) Entries() []Entry {
	if l == nil {
		return nil
	}
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Entry looks up a headword by exact source identity.
func (l *Lexicon) Entry(headword string) (Entry, bool) {
	if l == nil {
		return Entry{}, false
	}
	i, ok := l.index[headword]
	if !ok {
		return Entry{}, false
	}
	return l.entries[i], true
}

// SpecialWords returns the special-word rules in document order.
func (l *Lexicon) SpecialWords() []SpecialWord {
	if l == nil {
		return nil
	}
	return append([]SpecialWord(nil), l.special...)
}

// ClickableWords returns the clickable-word table in document order.
func (l *Lexicon) ClickableWords() []ClickableWord {
	if l == nil {
		return nil
	}
	return append([]ClickableWord(nil), l.clickable...)
}

// Meanings returns the meaning groups of a clickable word. An exact key match
// wins; otherwise the first key equal to word after Normalize is used.
func (l *Lexicon) Meanings(word string) ([]MeaningGroup, bool) {
	if l == nil {
		return nil, false
	}
	if i, ok := l.clickIndex[word]; ok {
		return l.clickable[i].Meanings, true
	}
	norm := Normalize(word)
	for _, cw := range l.clickable {
		if Normalize(cw.Word) == norm {
			return cw.Meanings, true
		}
	}
	return nil, false
}

// builder accumulates a Lexicon while a document is decoded.
type builder struct {
	lex *Lexicon
}

func newBuilder() *builder {
	return &builder{lex: &Lexicon{
		index:      make(map[string]int),
		clickIndex: make(map[string]int),
	}}
}

// addEntry appends an entry. A repeated headword keeps its first position
// and takes the later record, matching how JSON objects resolve duplicates.
func (b *builder) addEntry(headword, description string) {
	if i, ok := b.lex.index[headword]; ok {
		b.lex.entries[i].Description = description
		return
	}
	b.lex.index[headword] = len(b.lex.entries)
	b.lex.entries = append(b.lex.entries, Entry{
		Headword:    headword,
		Description: description,
		Order:       len(b.lex.entries),
	})
}

func (b *builder) addSpecial(word, label string) {
	for i := range b.lex.special {
		if b.lex.special[i].Word == word {
			b.lex.special[i].Label = label
			return
		}
	}
	b.lex.special = append(b.lex.special, SpecialWord{Word: word, Label: label})
}

func (b *builder) addClickable(word string, meanings []MeaningGroup) {
	if i, ok := b.lex.clickIndex[word]; ok {
		b.lex.clickable[i].Meanings = meanings
		return
	}
	b.lex.clickIndex[word] = len(b.lex.clickable)
	b.lex.clickable = append(b.lex.clickable, ClickableWord{Word: word, Meanings: meanings})
}

func (b *builder) build() (*Lexicon, error) {
	if len(b.lex.entries) == 0 {
		return nil, ErrEmpty
	}
	return b.lex, nil
}
