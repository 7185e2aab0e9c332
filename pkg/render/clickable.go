package render

import (
	"io"
	"strings"

	"github.com/bastiangx/lexserve/pkg/lexicon"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
)

// DefaultClickableClass marks interactive words.
const DefaultClickableClass = "clickable-word"

// WordAttr carries the table key of a clickable occurrence.
const WordAttr = "data-word"

// Locator wraps occurrences of clickable words in rendered markup.
//
// Only text content is rewritten: tag names, attribute values and markup
// injected by earlier steps are never matched.
type Locator struct {
	words []string
	// folded holds lexicon.Normalize of each word; matching is literal on
	// normalized text, so casing follows the same Turkish rule as search.
	folded []string
	class  string
}

// NewLocator prepares one case-insensitive literal matcher per table key.
func NewLocator(words []lexicon.ClickableWord, clickableClass string) *Locator {
	if clickableClass == "" {
		clickableClass = DefaultClickableClass
	}
	l := &Locator{class: clickableClass}
	for _, w := range words {
		if w.Word == "" {
			continue
		}
		l.words = append(l.words, w.Word)
		l.folded = append(l.folded, lexicon.Normalize(w.Word))
	}
	return l
}

// segment is a piece of a text token; key is -1 for plain text.
type segment struct {
	text string
	key  int
}

// Mark returns markup with every clickable occurrence wrapped.
func (l *Locator) Mark(markup string) string {
	if len(l.words) == 0 || markup == "" {
		return markup
	}

	var b strings.Builder
	b.Grow(len(markup))
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				log.Errorf("Tokenizing rendered markup: %v", err)
			}
			break
		}
		if tt != html.TextToken {
			b.Write(z.Raw())
			continue
		}
		raw := string(z.Raw())
		segs := l.split(string(z.Text()))
		if len(segs) == 1 && segs[0].key < 0 {
			b.WriteString(raw)
			continue
		}
		for _, s := range segs {
			if s.key < 0 {
				b.WriteString(html.EscapeString(s.text))
				continue
			}
			b.WriteString(`<span class="`)
			b.WriteString(html.EscapeString(l.class))
			b.WriteString(`" ` + WordAttr + `="`)
			b.WriteString(html.EscapeString(l.words[s.key]))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(s.text))
			b.WriteString("</span>")
		}
	}
	return b.String()
}

// split cuts text at clickable occurrences, applying keys in table order.
// Text already claimed by an earlier key is not matched again.
func (l *Locator) split(text string) []segment {
	segs := []segment{{text: text, key: -1}}
	for k, word := range l.folded {
		var next []segment
		for _, s := range segs {
			if s.key >= 0 {
				next = append(next, s)
				continue
			}
			pos := 0
			for _, loc := range findFolded(s.text, word) {
				if loc[0] > pos {
					next = append(next, segment{text: s.text[pos:loc[0]], key: -1})
				}
				next = append(next, segment{text: s.text[loc[0]:loc[1]], key: k})
				pos = loc[1]
			}
			if pos < len(s.text) {
				next = append(next, segment{text: s.text[pos:], key: -1})
			}
		}
		segs = next
	}
	return segs
}

// findFolded returns the byte ranges in text of non-overlapping occurrences
// of folded, a normalized word. Normalize maps rune to rune, so rune offsets
// in the normalized text are rune offsets in text.
func findFolded(text, folded string) [][2]int {
	norm := lexicon.Normalize(text)
	if !strings.Contains(norm, folded) {
		return nil
	}

	// origAt[r] is the byte offset in text of rune r; runeAt maps a byte
	// offset in norm back to its rune index.
	origAt := make([]int, 0, len(text)+1)
	for i := range text {
		origAt = append(origAt, i)
	}
	origAt = append(origAt, len(text))
	runeAt := make(map[int]int, len(origAt))
	r := 0
	for i := range norm {
		runeAt[i] = r
		r++
	}
	runeAt[len(norm)] = r

	var out [][2]int
	for pos := 0; pos < len(norm); {
		k := strings.Index(norm[pos:], folded)
		if k < 0 {
			break
		}
		start, end := pos+k, pos+k+len(folded)
		out = append(out, [2]int{origAt[runeAt[start]], origAt[runeAt[end]]})
		pos = end
	}
	return out
}

// Mark wraps clickable occurrences using the default class.
func Mark(markup string, words []lexicon.ClickableWord) string {
	return NewLocator(words, DefaultClickableClass).Mark(markup)
}
