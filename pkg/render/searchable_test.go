package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchables(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []string
	}{
		{
			name:   "single span trimmed",
			markup: `see <span class="searchable"> kurt </span>`,
			want:   []string{"kurt"},
		},
		{
			name:   "document order and inner markup",
			markup: `<span class="searchable">kurt</span>, <span class="x searchable"><b>ata</b>m</span>`,
			want:   []string{"kurt", "atam"},
		},
		{
			name: "nested clickable span",
			markup: `<span class="searchable"><span class="clickable-word" data-word="wolf">wolf</span> pack</span>` +
				` <span class="pink">grey</span>`,
			want: []string{"wolf pack"},
		},
		{
			name:   "entities decoded",
			markup: `<span class="searchable">a &amp; b</span>`,
			want:   []string{"a & b"},
		},
		{
			name:   "other classes ignored",
			markup: `<span class="pink">kurt</span> <span class="searchables">x</span>`,
			want:   nil,
		},
		{
			name:   "blank span skipped",
			markup: `<span class="searchable">  </span>`,
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Searchables(tt.markup, DefaultSearchableClass))
		})
	}
}
