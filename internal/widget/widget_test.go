package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/handler"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/placement"
	"authoring-kit/internal/source"
	"authoring-kit/internal/target"
)

func compileScope(t *testing.T, cls *source.Class, scope string) (*target.Node, *diagnostic.Diagnostics) {
	t.Helper()

	diags := &diagnostic.Diagnostics{}
	ctx := handler.NewContext(NewRegistry(), diags, nil, handler.Options{NamePrefix: "./"}).For(cls, scope)

	root := target.NewRoot(scope, scope)
	ctx.Dispatch(cls, root)

	return root, diags
}

func textField(name string, rank int) *source.Member {
	return source.NewMember(name, source.KindField, "string",
		kinds.New(kinds.DialogField{Label: name, Ranking: rank}),
		kinds.New(kinds.TextField{}),
	)
}

func TestRegistry_Order(t *testing.T) {
	reg := NewRegistry()
	require.Empty(t, reg.Issues())

	regs := reg.Select(handler.Query{
		Scope: kinds.ScopeDialog,
		Kinds: []string{"DialogField", "TextField", "Multiple"},
	})

	var names []string
	for _, r := range regs {
		names = append(names, r.Name)
	}

	assert.Equal(t, []string{NameWidget, NameDialogField, NameMultiple}, names)

	repeatable := reg.Select(handler.Query{Scope: kinds.ScopeDialog, Kinds: []string{"Multiple"}, Repeatable: true})
	require.Len(t, repeatable, 1)
	assert.Equal(t, NameMultipleField, repeatable[0].Name)
}

func TestDialog_SingleSection(t *testing.T) {
	cls := source.NewClass("Teaser", nil, kinds.New(kinds.Dialog{Title: "Teaser"}))
	cls.AddMember(textField("Subtitle", 2))
	cls.AddMember(textField("Title", 1))

	root, diags := compileScope(t, cls, kinds.ScopeDialog)
	require.Zero(t, diags.Count(), diags.All())

	assert.Equal(t, kinds.RTDialog, root.Attr(placement.AttrResourceType))
	assert.Equal(t, "Teaser", root.Attr("jcr:title"))
	assert.Equal(t, kinds.RTContainer, root.Get("content").Attr(placement.AttrResourceType))

	items := root.Get("content/items")
	require.NotNil(t, items)
	assert.Equal(t, []string{"title", "subtitle"}, items.ChildNames())

	title := items.Get("title")
	assert.Equal(t, "./title", title.Attr(placement.AttrName))
	assert.Equal(t, kinds.RTTextField, title.Attr(placement.AttrResourceType))
	assert.Equal(t, "Title", title.Attr("fieldLabel"))
}

func TestDialog_NoFacetNoOutput(t *testing.T) {
	cls := source.NewClass("Teaser", nil, kinds.New(kinds.Dialog{Title: "Teaser"}))
	cls.AddMember(textField("Title", 0))

	root, diags := compileScope(t, cls, kinds.ScopeDesignDialog)

	assert.Zero(t, diags.Count())
	assert.True(t, root.IsEmpty())
}

func TestDialog_ClassTabs(t *testing.T) {
	tabs := kinds.New(kinds.Tabs{Value: []kinds.Tab{{Title: "Main"}, {Title: "Extra"}}})
	cls := source.NewClass("Card", nil, kinds.New(kinds.Dialog{}), tabs)
	cls.AddMember(textField("Title", 0))
	cls.AddMember(textField("Note", 0).AddDescriptor(kinds.New(kinds.Place{Value: "Extra"})))
	cls.AddMember(textField("Lost", 0).AddDescriptor(kinds.New(kinds.Place{Value: "Nowhere"})))

	root, diags := compileScope(t, cls, kinds.ScopeDialog)

	container := root.Get("content/items/tabs")
	require.NotNil(t, container)
	assert.Equal(t, kinds.RTTabs, container.Attr(placement.AttrResourceType))

	main := container.Get("items/Main")
	require.NotNil(t, main)
	assert.Equal(t, "Main", main.Attr(placement.AttrTitle))
	assert.NotNil(t, main.Get("items/title"))
	assert.NotNil(t, container.Get("items/Extra/items/note"))
	assert.Nil(t, container.Get("items/Main/items/note"))

	missing := diags.WithCode(diagnostic.CodeMissingSection)
	require.Len(t, missing, 1)
	assert.Equal(t, "Lost", missing[0].Member)
}

func TestFieldSet(t *testing.T) {
	address := source.NewClass("Address", nil)
	address.AddMember(textField("Street", 0))
	address.AddMember(textField("City", 1))

	fs := source.NewMember("Address", source.KindField, "Address",
		kinds.New(kinds.DialogField{Label: "Address"}),
		kinds.New(kinds.FieldSet{Title: "Postal", NamePrefix: "addr_"}),
	).SetValueClass(address)

	cls := source.NewClass("Shop", nil, kinds.New(kinds.Dialog{}))
	cls.AddMember(fs)

	root, diags := compileScope(t, cls, kinds.ScopeDialog)
	require.Zero(t, diags.Count(), diags.All())

	node := root.Get("content/items/address")
	require.NotNil(t, node)
	assert.Equal(t, kinds.RTFieldSet, node.Attr(placement.AttrResourceType))
	assert.Equal(t, "Postal", node.Attr("jcr:title"))
	assert.False(t, node.HasAttribute(placement.AttrName))
	assert.Equal(t, "./addr_street", node.Get("items/street").Attr(placement.AttrName))
	assert.Equal(t, "./addr_city", node.Get("items/city").Attr(placement.AttrName))
}

func TestFieldSet_NoValueClass(t *testing.T) {
	fs := source.NewMember("Broken", source.KindField, "string",
		kinds.New(kinds.DialogField{}),
		kinds.New(kinds.FieldSet{}),
	)

	cls := source.NewClass("Shop", nil, kinds.New(kinds.Dialog{}))
	cls.AddMember(fs)

	_, diags := compileScope(t, cls, kinds.ScopeDialog)

	invalid := diags.WithCode(diagnostic.CodeInvalidDescriptor)
	require.Len(t, invalid, 1)
	assert.Equal(t, "Broken", invalid[0].Member)
}

func TestMultiple(t *testing.T) {
	links := source.NewMember("Links", source.KindField, "[]string",
		kinds.New(kinds.DialogField{Label: "Links", Disabled: true}),
		kinds.New(kinds.TextField{EmptyText: "https://"}),
		kinds.New(kinds.Multiple{DeleteHint: true, TypeHint: "String"}),
	)

	cls := source.NewClass("Nav", nil, kinds.New(kinds.Dialog{}))
	cls.AddMember(links)

	root, diags := compileScope(t, cls, kinds.ScopeDialog)
	require.Zero(t, diags.Count(), diags.All())

	wrapper := root.Get("content/items/links")
	require.NotNil(t, wrapper)
	assert.Equal(t, kinds.RTMultifield, wrapper.Attr(placement.AttrResourceType))
	assert.Equal(t, "Links", wrapper.Attr("fieldLabel"))
	assert.Equal(t, "{Boolean}true", wrapper.Attr(placement.AttrComposite))
	assert.Equal(t, "String", wrapper.Attr("typeHint"))
	assert.False(t, wrapper.HasAttribute(placement.AttrName))

	inner := wrapper.Get(placement.InnerField)
	require.NotNil(t, inner)
	assert.Equal(t, "./links", inner.Attr(placement.AttrName))
	assert.Equal(t, kinds.RTTextField, inner.Attr(placement.AttrResourceType))
	assert.Equal(t, "https://", inner.Attr("emptyText"))
	assert.Equal(t, "{Boolean}true", inner.Attr("disabled"))
	assert.Equal(t, "{Boolean}true", wrapper.Attr("disabled"))
	assert.False(t, inner.HasAttribute("fieldLabel"))
}

func TestSelectOptions(t *testing.T) {
	sel := source.NewMember("Size", source.KindField, "string",
		kinds.New(kinds.DialogField{}),
		kinds.New(kinds.Select{Options: []kinds.Option{
			{Text: "Small", Value: "s"},
			{Text: "Large", Value: "l", Selected: true},
		}}),
	)

	cls := source.NewClass("Box", nil, kinds.New(kinds.Dialog{}))
	cls.AddMember(sel)

	root, _ := compileScope(t, cls, kinds.ScopeDialog)

	node := root.Get("content/items/size")
	require.NotNil(t, node)
	assert.Equal(t, kinds.RTSelect, node.Attr(placement.AttrResourceType))
	assert.Equal(t, []string{"s", "l"}, node.Get("items").ChildNames())
	assert.Equal(t, "Large", node.Get("items/l").Attr("text"))
	assert.Equal(t, "{Boolean}true", node.Get("items/l").Attr("selected"))
}

func TestSelectOptions_DuplicateValues(t *testing.T) {
	sel := source.NewMember("Size", source.KindField, "string",
		kinds.New(kinds.DialogField{}),
		kinds.New(kinds.Select{Options: []kinds.Option{
			{Text: "Small", Value: "s"},
			{Text: "Smaller", Value: "s"},
		}}),
	)

	cls := source.NewClass("Box", nil, kinds.New(kinds.Dialog{}))
	cls.AddMember(sel)

	root, _ := compileScope(t, cls, kinds.ScopeDialog)

	items := root.Get("content/items/size/items")
	require.NotNil(t, items)
	assert.Equal(t, []string{"s", "s_1"}, items.ChildNames())
	assert.Equal(t, "Small", items.Get("s").Attr("text"))
	assert.Equal(t, "Smaller", items.Get("s_1").Attr("text"))
}

func TestFacets(t *testing.T) {
	cls := source.NewClass("Teaser", nil,
		kinds.New(kinds.Component{Title: "Teaser", Group: "Content"}),
		kinds.New(kinds.HTMLTag{Class: "teaser"}),
		kinds.New(kinds.EditConfig{Layout: "editbar"}),
	)

	content, _ := compileScope(t, cls, kinds.ScopeContent)
	assert.Equal(t, TypeComponent, content.Attr(target.KindAttr))
	assert.Equal(t, "Teaser", content.Attr("jcr:title"))
	assert.Equal(t, "Content", content.Attr("componentGroup"))

	tag, _ := compileScope(t, cls, kinds.ScopeHTMLTag)
	assert.Equal(t, "div", tag.Attr("cq:tagName"))
	assert.Equal(t, "teaser", tag.Attr("class"))

	edit, _ := compileScope(t, cls, kinds.ScopeEditConfig)
	assert.Equal(t, TypeEditConfig, edit.Attr(target.KindAttr))
	assert.Equal(t, "editbar", edit.Attr("cq:layout"))

	child, _ := compileScope(t, cls, kinds.ScopeChildEditConfig)
	assert.True(t, child.IsEmpty())
}
