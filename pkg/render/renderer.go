package render

import (
	"strings"

	"github.com/bastiangx/lexserve/pkg/lexicon"
)

// Renderer runs the full description pipeline for one lexicon.
type Renderer struct {
	sanitizer  *Sanitizer
	annotator  *Annotator
	locator    *Locator
	searchable string
}

// Options tweak the class names a Renderer emits and recognizes.
type Options struct {
	HighlightClass  string
	ClickableClass  string
	SearchableClass string
}

// NewRenderer prepares a renderer for the rules and tables of lex.
func NewRenderer(lex *lexicon.Lexicon, opts Options) *Renderer {
	return &Renderer{
		sanitizer:  defaultSanitizer,
		annotator:  NewAnnotator(lex.SpecialWords(), opts.HighlightClass),
		locator:    NewLocator(lex.ClickableWords(), opts.ClickableClass),
		searchable: opts.SearchableClass,
	}
}

// Description renders an entry description to annotated, sanitized markup.
func (r *Renderer) Description(desc string) string {
	out := r.sanitizer.Sanitize(Breaks(desc))
	out = r.annotator.Annotate(out)
	return r.locator.Mark(out)
}

// Searchables lists the follow-up queries linked from rendered markup.
func (r *Renderer) Searchables(markup string) []string {
	return Searchables(markup, r.searchable)
}

// Meaning renders one meaning group, each line followed by a line break.
func (r *Renderer) Meaning(group lexicon.MeaningGroup) string {
	var b strings.Builder
	for _, line := range group {
		b.WriteString(r.sanitizer.Sanitize(line))
		b.WriteString("<br>")
	}
	return b.String()
}
