package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authoring-kit/internal/diagnostic"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{"single", "field", []string{"field"}},
		{"nested", "content/items/field", []string{"content", "items", "field"}},
		{"leading and trailing", "/a/b/", []string{"a", "b"}},
		{"self and parent", "./a/../b", []string{".", "a", "..", "b"}},
		{"double quoted", `a/"b/c"/d`, []string{"a", "b/c", "d"}},
		{"single quoted", `'x/y'`, []string{"x/y"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPath(tt.path))
		})
	}
}

func TestNode_NameUniqueness(t *testing.T) {
	root := NewRoot("cq:dialog", "cq:dialog")

	first := root.CreateChild("field")
	assert.Same(t, first, root.GetOrCreate("field"))

	second := root.CreateChild("field")
	assert.NotEqual(t, first.Name(), second.Name())
	assert.Equal(t, "field_1", second.Name())
	assert.Equal(t, "field", second.RequestedName())
	assert.Equal(t, []string{"field", "field_1"}, root.ChildNames())

	assert.Same(t, second, root.Get("field_1"))
}

func TestNode_IsEmpty(t *testing.T) {
	root := NewRoot("root", "")
	assert.True(t, root.IsEmpty())
	assert.Equal(t, KindUnstructured, root.Attr(KindAttr))

	root.SetString("title", "")
	assert.True(t, root.IsEmpty(), "blank attribute is not stored")

	root.SetString("title", "T")
	assert.False(t, root.IsEmpty())

	other := NewRoot("other", "")
	other.CreateChild("x")
	assert.False(t, other.IsEmpty())
}

func TestNode_GetOrCreate(t *testing.T) {
	root := NewRoot("root", "cq:dialog")

	items := root.GetOrCreate("content/items")
	require.NotNil(t, items)
	assert.Equal(t, "/root/content/items", items.Path())
	assert.Equal(t, "cq:dialog", items.Scope())

	assert.Same(t, items, root.Get("content/items"))
	assert.Same(t, root.Get("content"), items.Get(".."))
	assert.Same(t, items, items.Get("."))
	assert.Same(t, root, items.Get("/"))
	assert.Same(t, items, items.Get("/content/items"))
	assert.Nil(t, root.Get("missing"))
	assert.Nil(t, root.Get(".."))

	quoted := root.GetOrCreate(`"a/b"`)
	assert.Equal(t, "a_b", quoted.Name())
	assert.Same(t, quoted, root.GetOrCreate(`"a/b"`))
}

func TestNode_Create(t *testing.T) {
	root := NewRoot("root", "")

	old := root.GetOrCreate("content/field")
	old.SetString("a", "1")

	fresh := root.Create("content/field")
	assert.NotSame(t, old, fresh)
	assert.Nil(t, old.Parent())
	assert.Equal(t, "field", fresh.Name())
	assert.Len(t, root.Get("content").Children(), 1)

	assert.Same(t, root.Get("content"), fresh.Create(".."))
}

func TestNode_AddChild(t *testing.T) {
	root := NewRoot("root", "")
	a := root.CreateChild("a")
	b := root.CreateChild("b")
	c := a.CreateChild("c")

	require.NoError(t, b.AddChild(c, 0))
	assert.Same(t, b, c.Parent())
	assert.Empty(t, a.Children())

	d := b.CreateChild("d")
	moved := NewRoot("c", "")
	require.NoError(t, b.AddChild(moved, 1))
	assert.Equal(t, []string{"c", "c_1", "d"}, b.ChildNames())

	require.NoError(t, b.AddChild(a, 99))
	assert.Equal(t, "a", b.Children()[3].Name())

	err := c.AddChild(root, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrLayout)

	assert.Error(t, d.AddChild(d, 0))
	assert.Same(t, b, d.Parent())
}

func TestNode_RemoveTarget(t *testing.T) {
	root := NewRoot("root", "")
	leaf := root.GetOrCreate("x/y")

	assert.Same(t, leaf, root.RemoveTarget("x/y"))
	assert.Nil(t, root.Get("x/y"))
	assert.Nil(t, root.RemoveTarget("x/y"))
	assert.Nil(t, root.RemoveTarget("."))
}

func TestNode_Rename(t *testing.T) {
	root := NewRoot("root", "")
	root.CreateChild("field")
	other := root.CreateChild("other")

	other.Rename("field")
	assert.Equal(t, "field_1", other.Name())
	assert.Equal(t, "field", other.RequestedName())
}

func TestNode_NamePrefix(t *testing.T) {
	root := NewRoot("root", "")
	outer := root.CreateChild("outer").SetNamePrefix("address_").SetNamePostfix("_x")
	inner := outer.CreateChild("inner").SetNamePrefix("home_").SetNamePostfix("_y")

	assert.Equal(t, "address_home_", inner.NamePrefix())
	assert.Equal(t, "_y_x", inner.NamePostfix())
	assert.Equal(t, "address_home_street_y_x", inner.ComposeName("street"))
	assert.Equal(t, "street", root.ComposeName("street"))
}

func TestNode_Walk(t *testing.T) {
	root := NewRoot("root", "")
	root.GetOrCreate("a/b")
	root.GetOrCreate("c")

	var seen []string
	root.Walk(func(n *Node) bool {
		seen = append(seen, n.Name())
		return n.Name() != "a"
	})

	assert.Equal(t, []string{"root", "a", "c"}, seen)
}
