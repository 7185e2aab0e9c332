package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
)

// DefaultSearchableClass marks spans whose text is itself a query.
const DefaultSearchableClass = "searchable"

// Searchables returns the trimmed text of every span carrying class, in
// document order. Nested markup inside such a span contributes its text.
func Searchables(markup, class string) []string {
	if class == "" {
		class = DefaultSearchableClass
	}
	if !strings.Contains(markup, class) {
		return nil
	}

	var (
		out   []string
		text  strings.Builder
		depth int
	)
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				log.Debugf("Tokenizing markup for searchable spans: %v", err)
			}
			return out
		case html.TextToken:
			if depth > 0 {
				text.Write(z.Text())
			}
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "span" {
				continue
			}
			if depth > 0 {
				depth++
				continue
			}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "class" && hasClassName(string(val), class) {
					depth = 1
					text.Reset()
				}
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) != "span" || depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				if s := strings.TrimSpace(text.String()); s != "" {
					out = append(out, s)
				}
			}
		}
	}
}

func hasClassName(classAttr, class string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == class {
			return true
		}
	}
	return false
}
