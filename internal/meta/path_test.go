package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath_SingleName(t *testing.T) {
	for _, name := range []string{"label", "renderHidden", "x", "jcr:title", "a-b_c"} {
		t.Run(name, func(t *testing.T) {
			p := ParsePath(name)
			require.Equal(t, 1, p.Len())
			assert.Equal(t, name, p.Elements[0].Name)
			assert.False(t, p.Elements[0].HasIndex())
			assert.Equal(t, DelimNone, p.Delimiter)
		})
	}
}

func TestParsePath_Hierarchical(t *testing.T) {
	p := ParsePath("a/b[2]/c")

	require.Equal(t, 3, p.Len())
	assert.True(t, p.IsHierarchical())
	assert.Equal(t, PathElement{Name: "a", Index: -1}, p.Elements[0])
	assert.Equal(t, PathElement{Name: "b", Index: 2}, p.Elements[1])
	assert.Equal(t, PathElement{Name: "c", Index: -1}, p.Elements[2])
	assert.Equal(t, "a/b[2]/c", p.String())
}

func TestParsePath_Edges(t *testing.T) {
	tests := []struct {
		in       string
		names    []string
		indexes  []int
		delim    byte
		rendered string
	}{
		{"/a/b/", []string{"a", "b"}, []int{-1, -1}, DelimSlash, "a/b"},
		{"DialogField.label", []string{"DialogField", "label"}, []int{-1, -1}, DelimDot, "DialogField.label"},
		{"value()", []string{"value"}, []int{-1}, DelimNone, "value"},
		{"tabs()[3]", []string{"tabs"}, []int{3}, DelimNone, "tabs[3]"},
		{"items[x]", []string{"items[x]"}, []int{-1}, DelimNone, "items[x]"},
		{"items[-1]", []string{"items[-1]"}, []int{-1}, DelimNone, "items[-1]"},
		{"a//b", []string{"a", "b"}, []int{-1, -1}, DelimSlash, "a/b"},
		{"/", []string{"/"}, []int{-1}, DelimNone, "/"},
		{"[1]", []string{"[1]"}, []int{-1}, DelimNone, "[1]"},
		{"()", []string{"()"}, []int{-1}, DelimNone, "()"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := ParsePath(tt.in)
			require.Equal(t, len(tt.names), p.Len())

			for i := range tt.names {
				assert.Equal(t, tt.names[i], p.Elements[i].Name)
				assert.Equal(t, tt.indexes[i], p.Elements[i].Index)
			}

			assert.Equal(t, tt.delim, p.Delimiter)
			assert.Equal(t, tt.rendered, p.String())
		})
	}
}

func TestPropertyPath_Queue(t *testing.T) {
	p := ParsePath("a/b/c")

	head, ok := p.Head()
	require.True(t, ok)
	assert.Equal(t, "a", head.Name)

	rest := p.Tail()
	assert.Equal(t, 2, rest.Len())
	assert.Equal(t, "b/c", rest.String())

	last, ok := p.Last()
	require.True(t, ok)
	assert.Equal(t, "c", last.Name)

	assert.Equal(t, 0, rest.Tail().Tail().Len())

	_, ok = PropertyPath{}.Head()
	assert.False(t, ok)
}
