/*
Package render turns entry descriptions into the markup lexserve hands to a
presentation layer.

A description goes through four steps, in this order:

	Breaks     literal newlines become <br>
	Sanitize   allow-list of inline tags: b, i, em, strong, span, br
	Annotate   special-word rules style the word that follows each marker
	Mark       clickable words are wrapped in an interactive span

The output never contains tags outside the sanitizer's allow-list.
*/
package render

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// AllowedTags is the inline formatting allow-list applied to descriptions.
var AllowedTags = []string{"b", "i", "em", "strong", "span", "br"}

// Breaks converts literal newlines into line-break markup.
func Breaks(text string) string {
	return strings.ReplaceAll(text, "\n", "<br>")
}

// Sanitizer strips everything outside AllowedTags. It is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds the allow-list policy. span keeps its class attribute.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(AllowedTags...)
	p.AllowNoAttrs().OnElements("span")
	p.AllowAttrs("class").OnElements("span")
	return &Sanitizer{policy: p}
}

// Sanitize returns html restricted to the allow-list.
func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

var defaultSanitizer = NewSanitizer()

// Sanitize applies the default allow-list policy.
func Sanitize(html string) string {
	return defaultSanitizer.Sanitize(html)
}
