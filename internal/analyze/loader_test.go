package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/source"
)

const samplePkg = "authoring-kit/sample"

func loadSample(t *testing.T) (*Analyzer, *diagnostic.Diagnostics) {
	t.Helper()

	diags := &diagnostic.Diagnostics{}
	analyzer := NewAnalyzer(WithSink(diags))

	classes, err := analyzer.LoadPackages(samplePkg)
	require.NoError(t, err)
	require.NotEmpty(t, classes)

	return analyzer, diags
}

func memberNames(members []*source.Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Name()
	}

	return out
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer, _ := loadSample(t)

	for _, name := range []string{"Base", "Teaser", "Address", "Card", "Broken"} {
		cls := analyzer.Class(name)
		require.NotNil(t, cls, name)
		assert.Equal(t, samplePkg, cls.Package())
	}

	assert.NotNil(t, analyzer.Class(samplePkg+".Teaser"))
	assert.Nil(t, analyzer.Class("Missing"))
}

func TestAnalyzer_ClassDescriptors(t *testing.T) {
	analyzer, _ := loadSample(t)

	teaser := analyzer.Class("Teaser")
	assert.Equal(t, []string{"Component", "Dialog", "HTMLTag"}, source.KindsOf(teaser))
	assert.Equal(t, "Teaser, edit", teaser.Descriptor("Dialog").String("title"))
	assert.Equal(t, "Sample", teaser.Descriptor("Component").String("group"))

	card := analyzer.Class("Card")
	tabs := card.Descriptor("Tabs").Descriptors("value")
	require.Len(t, tabs, 2)
	assert.Equal(t, "Main", tabs[0].String("title"))
	assert.Equal(t, "Extra", tabs[1].String("title"))
}

func TestAnalyzer_Inheritance(t *testing.T) {
	analyzer, _ := loadSample(t)

	teaser := analyzer.Class("Teaser")
	base := analyzer.Class("Base")

	require.Equal(t, base, teaser.Parent())
	assert.Equal(t, []string{"Title", "Subtitle", "Links", "Address", "Notes"}, memberNames(teaser.Members()))
	assert.Equal(t, []string{"Anchor", "Title", "Subtitle", "Links", "Address", "Notes"}, memberNames(teaser.AllMembers()))
	assert.Equal(t, base, teaser.AllMembers()[0].Class())
}

func TestAnalyzer_FieldDescriptors(t *testing.T) {
	analyzer, _ := loadSample(t)

	teaser := analyzer.Class("Teaser")
	byName := make(map[string]*source.Member)
	for _, m := range teaser.Members() {
		byName[m.Name()] = m
	}

	title := byName["Title"]
	assert.Equal(t, source.KindField, title.Kind())
	assert.Equal(t, "string", title.ValueType())
	assert.Equal(t, "Title", title.Descriptor("DialogField").String("label"))
	assert.True(t, title.Descriptor("DialogField").Bool("required"))
	assert.EqualValues(t, 80, title.Descriptor("TextField").Int("maxLength"))

	links := byName["Links"]
	assert.Equal(t, "[]string", links.ValueType())
	assert.Equal(t, "String", links.Descriptor("Multiple").String("typeHint"))
	assert.True(t, links.Descriptor("Multiple").Bool("deleteHint"), "map-backed descriptors keep defaults")

	address := byName["Address"]
	require.NotNil(t, address.ValueClass())
	assert.Equal(t, analyzer.Class("Address"), address.ValueClass())
	assert.Equal(t, "addr_", address.Descriptor("FieldSet").String("namePrefix"))

	assert.Empty(t, byName["Notes"].Descriptors())
}

func TestAnalyzer_Methods(t *testing.T) {
	analyzer, _ := loadSample(t)

	card := analyzer.Class("Card")
	assert.Equal(t, []string{"Heading", "Note", "Size", "GetLabel"}, memberNames(card.Members()))

	label := card.Members()[3]
	assert.Equal(t, source.KindMethod, label.Kind())
	assert.Equal(t, "label", label.EffectiveName())
	assert.Equal(t, "string", label.ValueType())
	assert.EqualValues(t, -1, label.Descriptor("DialogField").Int("ranking"))
	assert.True(t, source.Has(label, "TextField"))

	note := card.Members()[1]
	assert.Equal(t, "Extra", note.Descriptor("Place").String("value"))
	assert.Equal(t, kinds.ScopeDialog, note.Descriptor("Place").String("scope"))
}

func TestAnalyzer_Diagnostics(t *testing.T) {
	analyzer, diags := loadSample(t)

	broken := analyzer.Class("Broken")
	require.NotNil(t, broken)

	bad := broken.Members()[0]
	assert.Equal(t, []string{"DialogField"}, source.KindsOf(bad))

	count := broken.Members()[1]
	assert.Equal(t, []string{"DialogField", "NumberField"}, source.KindsOf(count))

	lookups := diags.WithCode("lookup")
	require.Len(t, lookups, 1)
	require.NotEmpty(t, lookups[0].Suggestions)
	assert.Equal(t, "label", lookups[0].Suggestions[0])

	invalid := diags.WithCode(diagnostic.CodeInvalidDescriptor)
	require.Len(t, invalid, 2)
	assert.Contains(t, invalid[0].Message, "Bogus")
	assert.Equal(t, "Count", invalid[1].Member)
}
