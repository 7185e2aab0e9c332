package cli

import (
	"io"
	"strings"

	"github.com/bastiangx/lexserve/pkg/render"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
)

// Styles maps rendered markup onto terminal styles.
type Styles struct {
	Bold       lipgloss.Style
	Italic     lipgloss.Style
	Highlight  lipgloss.Style
	Clickable  lipgloss.Style
	Searchable lipgloss.Style
	Label      lipgloss.Style
	Ghost      lipgloss.Style
	Error      lipgloss.Style
}

// DefaultStyles mirror the web widget colours.
func DefaultStyles() Styles {
	return Styles{
		Bold:       lipgloss.NewStyle().Bold(true),
		Italic:     lipgloss.NewStyle().Italic(true),
		Highlight:  lipgloss.NewStyle().Foreground(lipgloss.Color("#eb6f92")),
		Clickable:  lipgloss.NewStyle().Foreground(lipgloss.Color("#e9d677")).Underline(true),
		Searchable: lipgloss.NewStyle().Foreground(lipgloss.Color("#9ccfd8")).Underline(true),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).Bold(true),
		Ghost:      lipgloss.NewStyle().Faint(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#eb6f92")).Bold(true),
	}
}

type openTag struct {
	name  string
	class string
}

// RenderMarkup converts rendered description markup into styled terminal
// text. <br> becomes a newline; unknown tags are dropped, their text kept.
func RenderMarkup(markup string, st Styles, classes render.Options) string {
	highlight := classes.HighlightClass
	if highlight == "" {
		highlight = render.DefaultHighlightClass
	}
	clickable := classes.ClickableClass
	if clickable == "" {
		clickable = render.DefaultClickableClass
	}
	searchable := classes.SearchableClass
	if searchable == "" {
		searchable = render.DefaultSearchableClass
	}

	var (
		b     strings.Builder
		stack []openTag
	)
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				log.Debugf("Tokenizing markup for terminal: %v", err)
			}
			return b.String()
		case html.TextToken:
			b.WriteString(styleFor(stack, st, highlight, clickable, searchable).Render(string(z.Text())))
		case html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				b.WriteString("\n")
			}
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) == "br" {
				b.WriteString("\n")
				continue
			}
			tag := openTag{name: string(name)}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "class" {
					tag.class = string(val)
				}
			}
			stack = append(stack, tag)
		case html.EndTagToken:
			name, _ := z.TagName()
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].name == string(name) {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

func styleFor(stack []openTag, st Styles, highlight, clickable, searchable string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for _, t := range stack {
		switch {
		case t.name == "b" || t.name == "strong":
			style = style.Inherit(st.Bold)
		case t.name == "i" || t.name == "em":
			style = style.Inherit(st.Italic)
		case t.name == "span" && hasClass(t.class, clickable):
			style = st.Clickable.Inherit(style)
		case t.name == "span" && hasClass(t.class, searchable):
			style = st.Searchable.Inherit(style)
		case t.name == "span" && hasClass(t.class, highlight):
			style = st.Highlight.Inherit(style)
		}
	}
	return style
}

func hasClass(classAttr, class string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == class {
			return true
		}
	}
	return false
}
