package target

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authoring-kit/internal/meta"
)

type populateNested struct {
	Title string
}

type populateKind struct {
	Label    string   `meta:"label,attr=fieldLabel"`
	Ranking  int      `meta:"ranking,skip"`
	Required bool     `meta:"required"`
	Max      int      `default:"10"`
	Classes  []string `meta:"classes,attr=granite:class,list"`
	Tooltip  string   `meta:"tooltip,node=granite:data"`
	Mode     meta.TypeRef
	Nested   populateNested
}

func populateDescriptor(t *testing.T, src populateKind) *meta.Descriptor {
	t.Helper()

	k, err := meta.NewCatalog(4).KindOf(reflect.TypeOf(src))
	require.NoError(t, err)

	return meta.New(k, src)
}

func TestNode_Populate(t *testing.T) {
	d := populateDescriptor(t, populateKind{
		Label:   "Title",
		Ranking: 3,
		Max:     10,
		Classes: []string{"wide"},
		Tooltip: "help",
		Mode:    "Custom",
		Nested:  populateNested{Title: "n"},
	})

	n := NewRoot("field", "")
	n.SetStrings("granite:class", []string{"base"})

	written := n.Populate(d, nil)
	assert.Equal(t, 4, written)

	assert.Equal(t, "Title", n.Attr("fieldLabel"))
	assert.False(t, n.HasAttribute("ranking"), "skip-tagged")
	assert.False(t, n.HasAttribute("required"), "default value")
	assert.False(t, n.HasAttribute("max"), "declared default")
	assert.Equal(t, "[base,wide]", n.Attr("granite:class"))
	assert.Equal(t, "Custom", n.Attr("mode"))
	assert.False(t, n.HasAttribute("nested"))

	data := n.Get("granite:data")
	require.NotNil(t, data)
	assert.Equal(t, "help", data.Attr("tooltip"))
}

func TestNode_PopulateFilter(t *testing.T) {
	d := populateDescriptor(t, populateKind{Label: "L", Required: true})

	n := NewRoot("field", "")
	n.Populate(d, func(p meta.Property) bool { return p.Name != "label" })

	assert.False(t, n.HasAttribute("fieldLabel"))
	assert.Equal(t, "{Boolean}true", n.Attr("required"))
	assert.Equal(t, 0, n.Populate(nil, nil))
}

func TestRenderValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
		ok    bool
	}{
		{"string", "x", "x", true},
		{"bool", false, "{Boolean}false", true},
		{"int", 7, "{Long}7", true},
		{"uint", uint8(3), "{Long}3", true},
		{"float", 2.25, "{Double}2.25", true},
		{"strings", []string{"a", "b"}, "[a,b]", true},
		{"ints", []int{1, 2}, "{Long}[1,2]", true},
		{"empty ints", []int{}, "{Long}[]", true},
		{"typeref", meta.TypeRef("T"), "T", true},
		{"no selection", meta.NoSelection, "_Default", false},
		{"date", time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC), "{Date}2020-01-02T03:04:05.000Z", true},
		{"nil", nil, "", false},
		{"map", map[string]int{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RenderValue(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
