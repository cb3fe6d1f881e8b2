package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripGetter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"getTitle", "title"},
		{"isShown", "shown"},
		{"title", "title"},
		{"Title", "title"},
		{"get", "get"},
		{"getter", "getter"},
		{"island", "island"},
		{"GetTitle", "title"},
		{"IsOpen", "open"},
		{"Issue", "issue"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripGetter(tt.in))
		})
	}
}

func TestSanitizeNodeName(t *testing.T) {
	assert.Equal(t, "Main_Tab", SanitizeNodeName("Main Tab", "x"))
	assert.Equal(t, "jcr:content", SanitizeNodeName("jcr:content", "x"))
	assert.Equal(t, "a_b", SanitizeNodeName("a / b", "x"))
	assert.Equal(t, "x", SanitizeNodeName("  ///  ", "x"))
	assert.Equal(t, "ab", SanitizeNodeName("äab", "x"))
}

func TestGroupBy(t *testing.T) {
	keys, groups := GroupBy([]string{"a1", "b1", "a2"}, func(s string) byte { return s[0] })
	assert.Equal(t, []byte{'a', 'b'}, keys)
	assert.Equal(t, []string{"a1", "a2"}, groups['a'])
	assert.Equal(t, []string{"b1"}, groups['b'])
}

func TestFirstLast(t *testing.T) {
	f, ok := First([]int{1, 2})
	assert.True(t, ok)
	assert.Equal(t, 1, f)

	l, ok := Last([]int{1, 2})
	assert.True(t, ok)
	assert.Equal(t, 2, l)

	_, ok = Last([]int(nil))
	assert.False(t, ok)
}
