package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPrefixFold(t *testing.T) {
	tests := []struct {
		s, prefix string
		n         int
		ok        bool
	}{
		{"Anim. wolf", "anim.", 5, true},
		{"ANIM", "anim", 4, true},
		{"an", "anim", 0, false},
		{"ışık", "ış", 4, true},
		{"wolf", "", 0, true},
		{"ILIK su", "ılık", 4, true},
		{"ILIK", "ilik", 0, false},
		{"İnce", "ince", 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.s+"/"+tt.prefix, func(t *testing.T) {
			n, ok := HasPrefixFold(tt.s, tt.prefix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.n, n)
		})
	}
}

func TestEqualFoldTurkish(t *testing.T) {
	tests := []struct {
		a, b rune
		want bool
	}{
		{'a', 'A', true},
		{'I', 'ı', true},
		{'İ', 'i', true},
		{'I', 'i', false},
		{'i', 'I', false},
		{'Ş', 'ş', true},
		{'a', 'b', false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EqualFold(tt.a, tt.b), "%q %q", tt.a, tt.b)
	}
}

func TestRuneSuffix(t *testing.T) {
	assert.Equal(t, "a", RuneSuffix("ata", 2))
	assert.Equal(t, "şık", RuneSuffix("ışık", 1))
	assert.Equal(t, "", RuneSuffix("ata", 3))
	assert.Equal(t, "", RuneSuffix("ata", 10))
	assert.Equal(t, "ata", RuneSuffix("ata", 0))
}

func TestWhitespaceChecks(t *testing.T) {
	assert.True(t, StartsWithSpace(" abc"))
	assert.True(t, StartsWithSpace("\tabc"))
	assert.False(t, StartsWithSpace("abc "))
	assert.False(t, StartsWithSpace(""))

	assert.True(t, IsBlank("   "))
	assert.False(t, IsBlank(""))
	assert.False(t, IsBlank(" a"))
}

func TestIsWordRune(t *testing.T) {
	for _, r := range "aZ9ışğÇ" {
		assert.True(t, IsWordRune(r), string(r))
	}
	for _, r := range " .,-_<>&" {
		assert.False(t, IsWordRune(r), string(r))
	}
}
