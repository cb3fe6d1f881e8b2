package compile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/handler"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/source"
	"authoring-kit/internal/target"
)

func teaser() *source.Class {
	cls := source.NewClass("Teaser", nil,
		kinds.New(kinds.Component{Title: "Teaser"}),
		kinds.New(kinds.Dialog{Title: "Teaser"}),
	)

	cls.AddMember(source.NewMember("Title", source.KindField, "string",
		kinds.New(kinds.DialogField{Label: "Title"}),
		kinds.New(kinds.TextField{}),
	))

	cls.AddMember(source.NewMember("Design", source.KindField, "string",
		kinds.New(kinds.DialogField{Label: "Design"}),
		kinds.New(kinds.TextField{}),
		kinds.New(kinds.Place{Scope: kinds.ScopeDesignDialog}),
	))

	return cls
}

func TestCompile_Roots(t *testing.T) {
	res := New(nil, DefaultConfig(), nil).Compile(teaser())

	require.False(t, res.Diagnostics.HasErrors(), res.Diagnostics.All())

	var scopes []string
	for _, r := range res.Roots {
		scopes = append(scopes, r.Scope)
	}

	assert.Equal(t, []string{kinds.ScopeContent, kinds.ScopeDialog}, scopes)
	assert.Nil(t, res.Root(kinds.ScopeDesignDialog))

	dialog := res.Root(kinds.ScopeDialog)
	assert.Equal(t, []string{"title"}, dialog.Get("content/items").ChildNames())
	assert.Equal(t, "./title", dialog.Get("content/items/title").Attr("name"))
}

func TestCompile_DesignDialog(t *testing.T) {
	cls := teaser()
	cls.AddDescriptor(kinds.New(kinds.DesignDialog{Title: "Design"}))

	res := New(nil, DefaultConfig(), nil).Compile(cls)

	design := res.Root(kinds.ScopeDesignDialog)
	require.NotNil(t, design)
	assert.Equal(t, []string{"design"}, design.Get("content/items").ChildNames())
}

func TestCompile_ScopeFilter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scopes = []string{kinds.ScopeDialog}

	res := New(nil, cfg, nil).Compile(teaser())

	require.Len(t, res.Roots, 1)
	assert.Equal(t, kinds.ScopeDialog, res.Roots[0].Scope)
}

func TestCompile_EmptyRootDropped(t *testing.T) {
	reg := handler.NewRegistry([]handler.Registration{{
		Name:  "noop",
		Kinds: []string{"Dialog"},
		Handler: handler.Func(func(*handler.Context, source.Source, *target.Node) error {
			return nil
		}),
	}}, kinds.ScopesOf)

	res := New(reg, DefaultConfig(), nil).Compile(teaser())

	assert.Empty(t, res.Roots)
}

func TestCompileAll_Strict(t *testing.T) {
	broken := source.NewClass("Broken", nil, kinds.New(kinds.Dialog{}))
	broken.AddMember(source.NewMember("Group", source.KindField, "string",
		kinds.New(kinds.DialogField{}),
		kinds.New(kinds.FieldSet{}),
	))

	classes := []*source.Class{teaser(), broken}

	batch, err := New(nil, DefaultConfig(), nil).CompileAll(classes)
	require.NoError(t, err)
	require.Len(t, batch.Results, 2)
	assert.Len(t, batch.Diagnostics.WithCode(diagnostic.CodeInvalidDescriptor), 1)

	cfg := DefaultConfig()
	cfg.StrictMode = true

	batch, err = New(nil, cfg, nil).CompileAll(classes)
	require.ErrorIs(t, err, ErrStrict)
	assert.Len(t, batch.Results, 2)
}
