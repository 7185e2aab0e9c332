package render

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bastiangx/lexserve/internal/utils"
	"github.com/bastiangx/lexserve/pkg/lexicon"
	"golang.org/x/net/html"
)

// DefaultHighlightClass styles the word following a special word.
const DefaultHighlightClass = "pink"

// Placeholders are delimited by private-use runes so they cannot collide
// with description text.
const (
	markOpen  = '\uE000'
	markClose = '\uE001'
)

var leftoverMarks = regexp.MustCompile(`\x{E000}[0-9]+\x{E001}`)

// Annotator applies special-word rules to sanitized markup.
type Annotator struct {
	rules []lexicon.SpecialWord
	class string
}

// NewAnnotator creates an annotator for rules, applied in the given order.
func NewAnnotator(rules []lexicon.SpecialWord, highlightClass string) *Annotator {
	if highlightClass == "" {
		highlightClass = DefaultHighlightClass
	}
	return &Annotator{rules: rules, class: highlightClass}
}

// Annotate runs the two passes and strips unconsumed placeholders.
//
// Pass one replaces every whole-word, case-insensitive occurrence of a rule's
// word with a placeholder. Text is expected in sanitized form, so the word is
// matched in its HTML-escaped spelling. Pass two replaces each placeholder followed by
// whitespace and a non-whitespace run with the bold label, the original
// whitespace and the run wrapped in the highlight span. The marker word
// itself does not survive.
func (a *Annotator) Annotate(text string) string {
	if len(a.rules) == 0 {
		return text
	}
	for i, rule := range a.rules {
		if rule.Word == "" {
			continue
		}
		text = markWord(text, html.EscapeString(rule.Word), placeholder(i))
	}
	for i, rule := range a.rules {
		text = a.styleFollowing(text, placeholder(i), rule.Label)
	}
	return leftoverMarks.ReplaceAllString(text, "")
}

// Annotate applies rules with the default highlight class.
func Annotate(text string, rules []lexicon.SpecialWord) string {
	return NewAnnotator(rules, DefaultHighlightClass).Annotate(text)
}

func placeholder(i int) string {
	return string(markOpen) + strconv.Itoa(i) + string(markClose)
}

// opaqueLen returns the byte length of a tag, entity or placeholder starting
// at text[i], or 0. Opaque spans are never matched into and count as
// non-word neighbours.
func opaqueLen(text string, i int) int {
	switch {
	case text[i] == '<':
		if j := strings.IndexByte(text[i:], '>'); j >= 0 {
			return j + 1
		}
	case text[i] == '&':
		for j := i + 1; j < len(text) && j-i <= 32; j++ {
			c := text[j]
			if c == ';' && j > i+1 {
				return j - i + 1
			}
			if !(c == '#' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
				break
			}
		}
	case strings.HasPrefix(text[i:], string(markOpen)):
		if j := strings.IndexRune(text[i:], markClose); j >= 0 {
			return j + utf8.RuneLen(markClose)
		}
	}
	return 0
}

// markWord replaces whole-word occurrences of word with mark. An occurrence
// is whole when neither neighbour is a letter or digit. An escaped word may
// start with an entity; it never starts inside a tag or placeholder.
func markWord(text, word, mark string) string {
	var b strings.Builder
	b.Grow(len(text))
	prevWord := false
	for i := 0; i < len(text); {
		if !prevWord {
			if n, ok := utils.HasPrefixFold(text[i:], word); ok && n > 0 && !wordRuneAt(text, i+n) {
				b.WriteString(mark)
				last, _ := utf8.DecodeLastRuneInString(text[i : i+n])
				prevWord = utils.IsWordRune(last)
				i += n
				continue
			}
		}
		if n := opaqueLen(text, i); n > 0 {
			b.WriteString(text[i : i+n])
			i += n
			prevWord = false
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[i : i+size])
		prevWord = utils.IsWordRune(r)
		i += size
	}
	return b.String()
}

func wordRuneAt(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return utils.IsWordRune(r)
}

// styleFollowing rewrites each mark that is followed by a whitespace run and
// a non-whitespace run. Tags inside the run are kept whole, and the run stops
// at an end tag it did not open so the span nests inside the enclosing element.
func (a *Annotator) styleFollowing(text, mark, label string) string {
	var b strings.Builder
	pos := 0
	for {
		k := strings.Index(text[pos:], mark)
		if k < 0 {
			break
		}
		start := pos + k
		after := start + len(mark)

		wsEnd := after
		for wsEnd < len(text) {
			r, size := utf8.DecodeRuneInString(text[wsEnd:])
			if !unicode.IsSpace(r) {
				break
			}
			wsEnd += size
		}
		wordEnd := wsEnd
		var open [][2]int
	run:
		for wordEnd < len(text) {
			if text[wordEnd] == '<' {
				if j := strings.IndexByte(text[wordEnd:], '>'); j >= 0 {
					tag := text[wordEnd : wordEnd+j+1]
					switch {
					case strings.HasPrefix(tag, "</"):
						if len(open) == 0 {
							break run
						}
						open = open[:len(open)-1]
					case !isVoidTag(tag):
						open = append(open, [2]int{wordEnd, wordEnd + j + 1})
					}
					wordEnd += j + 1
					continue
				}
			}
			r, size := utf8.DecodeRuneInString(text[wordEnd:])
			if unicode.IsSpace(r) {
				break
			}
			wordEnd += size
		}

		if wsEnd == after || wordEnd == wsEnd {
			b.WriteString(text[pos:after])
			pos = after
			continue
		}

		// Start tags opening the run and closed after it stay outside the span.
		runStart := wsEnd
		for _, t := range open {
			if t[0] != runStart {
				break
			}
			runStart = t[1]
		}
		if runStart == wordEnd {
			b.WriteString(text[pos:after])
			pos = after
			continue
		}

		b.WriteString(text[pos:start])
		b.WriteString("<b>")
		b.WriteString(html.EscapeString(label))
		b.WriteString("</b>")
		b.WriteString(text[after:runStart])
		b.WriteString(`<span class="`)
		b.WriteString(html.EscapeString(a.class))
		b.WriteString(`">`)
		b.WriteString(text[runStart:wordEnd])
		b.WriteString("</span>")
		pos = wordEnd
	}
	b.WriteString(text[pos:])
	return b.String()
}

// isVoidTag reports whether tag never has an end tag: <br> or a self-closing form.
func isVoidTag(tag string) bool {
	if strings.HasSuffix(tag, "/>") {
		return true
	}
	name := strings.TrimPrefix(tag, "<")
	if i := strings.IndexAny(name, " \t\n/>"); i >= 0 {
		name = name[:i]
	}
	return strings.EqualFold(name, "br")
}
