package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFragments(t *testing.T) {
	tests := []struct {
		query    string
		fragment string
	}{
		{"ata", "#ata"},
		{"ışık", "#%C4%B1%C5%9F%C4%B1k"},
		{"grey wolf", "#grey%20wolf"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.fragment, FragmentFor(tt.query))
			assert.Equal(t, tt.query, QueryFromFragment(tt.fragment))
		})
	}
	assert.Equal(t, "%zz", QueryFromFragment("#%zz"))
}
