package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/source"
	"authoring-kit/internal/target"
)

func nop() Handler {
	return Func(func(*Context, source.Source, *target.Node) error { return nil })
}

func reg(name string, kinds ...string) Registration {
	return Registration{Name: name, Handler: nop(), Kinds: kinds}
}

func testScopes(kind string) []string {
	switch kind {
	case "Dialog":
		return []string{"dialog"}
	case "Design":
		return []string{"design"}
	case "Field":
		return []string{"dialog", "design"}
	}

	return nil
}

func TestOrderRegistrations(t *testing.T) {
	a := reg("a")
	b := reg("b")
	b.After = []string{"c"}
	c := reg("c")
	d := reg("d")
	d.Before = []string{"a"}

	r := NewRegistry([]Registration{a, b, c, d}, nil)
	assert.Equal(t, []string{"c", "b", "d", "a"}, r.Names())
	assert.Empty(t, r.Issues())
}

func TestOrderRegistrations_KeepsDiscoveryOrder(t *testing.T) {
	r := NewRegistry([]Registration{reg("z"), reg("y"), reg("x")}, nil)
	assert.Equal(t, []string{"z", "y", "x"}, r.Names())
}

func TestOrderRegistrations_Cycle(t *testing.T) {
	a := reg("a")
	a.After = []string{"b"}
	b := reg("b")
	b.After = []string{"a"}
	c := reg("c")

	r := NewRegistry([]Registration{a, b, c}, nil)
	assert.Equal(t, []string{"c", "a", "b"}, r.Names())

	require.Len(t, r.Issues(), 1)

	var layoutErr *diagnostic.LayoutError
	require.ErrorAs(t, r.Issues()[0], &layoutErr)
	assert.Equal(t, diagnostic.CodeOrderingCycle, layoutErr.Code)
	assert.True(t, layoutErr.Warning)
}

func TestOrderRegistrations_UnknownRelation(t *testing.T) {
	a := reg("a")
	a.After = []string{"ghost"}

	r := NewRegistry([]Registration{a, reg("b")}, nil)
	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Len(t, r.Issues(), 1)
}

func TestRegistry_Select(t *testing.T) {
	dialog := reg("dialog", "Dialog")
	field := reg("field", "Field")
	universal := reg("universal")
	explicit := reg("explicit", "Field")
	explicit.Scopes = []string{"design"}
	everywhere := reg("everywhere", "Other")
	everywhere.Scopes = []string{AnyScope}
	classInferred := reg("class-inferred", "Marker")
	repeat := reg("repeat", "Field")
	repeat.Repeatable = true

	r := NewRegistry([]Registration{dialog, field, universal, explicit, everywhere, classInferred, repeat}, testScopes)

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "class kinds in dialog",
			query: Query{Scope: "dialog", Kinds: []string{"Dialog"}},
			want:  []string{"dialog", "universal"},
		},
		{
			name:  "member kinds in design",
			query: Query{Scope: "design", Kinds: []string{"Field"}},
			want:  []string{"field", "universal", "explicit"},
		},
		{
			name:  "explicit scope excludes",
			query: Query{Scope: "dialog", Kinds: []string{"Field", "Other"}},
			want:  []string{"field", "universal", "everywhere"},
		},
		{
			name:  "inferred from class kinds",
			query: Query{Scope: "design", Kinds: []string{"Marker"}, ClassKinds: []string{"Design"}},
			want:  []string{"universal", "class-inferred"},
		},
		{
			name:  "class kinds do not match other scope",
			query: Query{Scope: "dialog", Kinds: []string{"Marker"}, ClassKinds: []string{"Design"}},
			want:  []string{},
		},
		{
			name:  "repeatable pass",
			query: Query{Scope: "dialog", Kinds: []string{"Field"}, Repeatable: true},
			want:  []string{"repeat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(r.Select(tt.query)))
		})
	}
}

func TestContext_Dispatch(t *testing.T) {
	var calls []string

	record := func(name string) Handler {
		return Func(func(ctx *Context, src source.Source, node *target.Node) error {
			calls = append(calls, name+":"+src.Name())
			node.SetString(name, "1")

			return nil
		})
	}

	failing := Registration{Name: "failing", Kinds: []string{"Field"}, Handler: Func(
		func(*Context, source.Source, *target.Node) error { return errors.New("boom") })}
	panicking := Registration{Name: "panicking", Kinds: []string{"Field"}, Handler: Func(
		func(*Context, source.Source, *target.Node) error { panic("bad") })}
	first := Registration{Name: "first", Kinds: []string{"Field"}, Handler: record("first")}
	last := Registration{Name: "last", Kinds: []string{"Field"}, Handler: record("last"), After: []string{"panicking"}}

	r := NewRegistry([]Registration{failing, panicking, first, last}, testScopes)

	var diags diagnostic.Diagnostics

	ctx := NewContext(r, &diags, nil, Options{}).For(source.NewClass("C", nil), "dialog")

	m := source.NewMember("Title", source.KindField, "string")
	m.AddDescriptor(fieldDescriptor(t))

	node := target.NewRoot("title", "dialog")
	ctx.Dispatch(m, node)

	assert.Equal(t, []string{"first:Title", "last:Title"}, calls)
	assert.Equal(t, "1", node.Attr("last"))

	require.Len(t, diags.Errors, 2)
	assert.Contains(t, diags.Errors[0].Message, "boom")
	assert.Equal(t, diagnostic.CodeHandlerPanic, diags.Errors[1].Code)
	assert.Equal(t, "C", diags.Errors[1].Class)
}

func TestContext_MaxDepth(t *testing.T) {
	var diags diagnostic.Diagnostics

	self := Registration{Name: "self", Kinds: []string{"Field"}, Handler: Func(
		func(ctx *Context, src source.Source, node *target.Node) error {
			ctx.Dispatch(src, node.CreateChild("again"))
			return nil
		})}

	r := NewRegistry([]Registration{self}, testScopes)
	ctx := NewContext(r, &diags, nil, Options{MaxDepth: 3}).For(source.NewClass("C", nil), "dialog")

	m := source.NewMember("Loop", source.KindField, "string", fieldDescriptor(t))
	root := target.NewRoot("loop", "dialog")
	ctx.Dispatch(m, root)

	require.Len(t, diags.WithCode(diagnostic.CodeRecursion), 1)
	assert.NotNil(t, root.Get("again/again/again"))
	assert.Nil(t, root.Get("again/again/again/again"))
}
