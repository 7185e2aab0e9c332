package render

import (
	"testing"

	"github.com/bastiangx/lexserve/pkg/lexicon"
	"github.com/stretchr/testify/assert"
)

func clickables(words ...string) []lexicon.ClickableWord {
	out := make([]lexicon.ClickableWord, 0, len(words))
	for _, w := range words {
		out = append(out, lexicon.ClickableWord{Word: w, Meanings: []lexicon.MeaningGroup{{w}}})
	}
	return out
}

func TestMark(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		words  []lexicon.ClickableWord
		want   string
	}{
		{
			name:   "plain text",
			markup: "a grey wolf",
			words:  clickables("wolf"),
			want:   `a grey <span class="clickable-word" data-word="wolf">wolf</span>`,
		},
		{
			name:   "case insensitive keeps surface form",
			markup: "<b>Wolf</b> and wolf",
			words:  clickables("wolf"),
			want: `<b><span class="clickable-word" data-word="wolf">Wolf</span></b> and ` +
				`<span class="clickable-word" data-word="wolf">wolf</span>`,
		},
		{
			name:   "attribute values untouched",
			markup: `<span class="wolf">fox</span>`,
			words:  clickables("wolf"),
			want:   `<span class="wolf">fox</span>`,
		},
		{
			name:   "tag names untouched",
			markup: "<b>x</b>",
			words:  clickables("b"),
			want:   "<b>x</b>",
		},
		{
			name:   "metacharacters are literal",
			markup: "axb a.b",
			words:  clickables("a.b"),
			want:   `axb <span class="clickable-word" data-word="a.b">a.b</span>`,
		},
		{
			name:   "earlier key claims text",
			markup: "grey wolf",
			words:  clickables("grey wolf", "wolf"),
			want:   `<span class="clickable-word" data-word="grey wolf">grey wolf</span>`,
		},
		{
			name:   "turkish casing",
			markup: "IŞIK ve Işık",
			words:  clickables("ışık"),
			want: `<span class="clickable-word" data-word="ışık">IŞIK</span> ve ` +
				`<span class="clickable-word" data-word="ışık">Işık</span>`,
		},
		{
			name:   "dotless I is not i",
			markup: "ILIK",
			words:  clickables("ilik"),
			want:   "ILIK",
		},
		{
			name:   "dotted capital I",
			markup: "İstanbul",
			words:  clickables("istanbul"),
			want:   `<span class="clickable-word" data-word="istanbul">İstanbul</span>`,
		},
		{
			name:   "no match is identity",
			markup: "father figure<br>elder",
			words:  clickables("wolf"),
			want:   "father figure<br>elder",
		},
		{
			name:   "no words",
			markup: "wolf",
			words:  nil,
			want:   "wolf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mark(tt.markup, tt.words))
		})
	}
}

func TestMarkSkipsEmptyKeys(t *testing.T) {
	l := NewLocator(clickables("", "wolf"), "cw")
	assert.Equal(t, `<span class="cw" data-word="wolf">wolf</span>`, l.Mark("wolf"))
}
