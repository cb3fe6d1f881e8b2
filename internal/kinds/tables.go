package kinds

import (
	"reflect"
	"strings"
	"sync"

	"authoring-kit/internal/meta"
)

// Output scopes, one root node each.
const (
	ScopeContent         = ".content"
	ScopeDialog          = "cq:dialog"
	ScopeDesignDialog    = "cq:design_dialog"
	ScopeEditConfig      = "cq:editConfig"
	ScopeChildEditConfig = "cq:childEditConfig"
	ScopeHTMLTag         = "cq:htmlTag"
)

// Scopes lists every scope in emission order.
var Scopes = []string{
	ScopeContent,
	ScopeDialog,
	ScopeDesignDialog,
	ScopeEditConfig,
	ScopeChildEditConfig,
	ScopeHTMLTag,
}

// Widget resource types.
const (
	RTDialog       = "cq/gui/components/authoring/dialog"
	RTContainer    = "granite/ui/components/coral/foundation/container"
	RTTabs         = "granite/ui/components/coral/foundation/tabs"
	RTAccordion    = "granite/ui/components/coral/foundation/accordion"
	RTFixedColumns = "granite/ui/components/coral/foundation/fixedcolumns"
	RTFieldSet     = "granite/ui/components/coral/foundation/form/fieldset"
	RTMultifield   = "granite/ui/components/coral/foundation/form/multifield"
	RTTextField    = "granite/ui/components/coral/foundation/form/textfield"
	RTNumberField  = "granite/ui/components/coral/foundation/form/numberfield"
	RTCheckbox     = "granite/ui/components/coral/foundation/form/checkbox"
	RTSelect       = "granite/ui/components/coral/foundation/form/select"
	RTTextArea     = "granite/ui/components/coral/foundation/form/textarea"
	RTHidden       = "granite/ui/components/coral/foundation/form/hidden"
	RTPathField    = "granite/ui/components/coral/foundation/form/pathfield"
)

var dialogScopes = []string{ScopeDialog, ScopeDesignDialog}

// Facet kinds map one-to-one to the scope they produce.
var facetScopes = map[string]string{
	"Component":       ScopeContent,
	"Dialog":          ScopeDialog,
	"DesignDialog":    ScopeDesignDialog,
	"EditConfig":      ScopeEditConfig,
	"ChildEditConfig": ScopeChildEditConfig,
	"HTMLTag":         ScopeHTMLTag,
}

// Widget kinds in lookup order with their resource types.
var widgetTypes = []struct {
	kind string
	rt   string
}{
	{"TextField", RTTextField},
	{"NumberField", RTNumberField},
	{"Checkbox", RTCheckbox},
	{"Select", RTSelect},
	{"TextArea", RTTextArea},
	{"Hidden", RTHidden},
	{"PathField", RTPathField},
}

// Containers are member kinds that place the members of the value type.
var Containers = []string{"FieldSet", "Tabs", "Accordion", "FixedColumns"}

// SectionContainers are the containers holding named sections.
var SectionContainers = []string{"Tabs", "Accordion", "FixedColumns"}

// Widgets returns the widget kind names.
func Widgets() []string {
	out := make([]string, len(widgetTypes))
	for i, w := range widgetTypes {
		out[i] = w.kind
	}

	return out
}

// ScopesOf returns the scopes a kind is usually written to. Member kinds
// belong to both dialogs; unknown kinds have none.
func ScopesOf(kind string) []string {
	if scope, ok := facetScopes[kind]; ok {
		return []string{scope}
	}

	switch kind {
	case "Place", "Ignore", "IgnoreFields", "IgnoreTabs", "Tab", "AccordionPanel", "Column", "Option":
		return nil
	}

	if _, ok := DefaultCatalog().Lookup(kind); ok {
		return dialogScopes
	}

	return nil
}

// FacetKind returns the kind producing the root of scope.
func FacetKind(scope string) string {
	for kind, s := range facetScopes {
		if s == scope {
			return kind
		}
	}

	return ""
}

// ResourceTypeOf returns the resource type a widget kind renders with.
func ResourceTypeOf(kind string) string {
	for _, w := range widgetTypes {
		if w.kind == kind {
			return w.rt
		}
	}

	switch kind {
	case "FieldSet":
		return RTFieldSet
	case "Tabs":
		return RTTabs
	case "Accordion":
		return RTAccordion
	case "FixedColumns":
		return RTFixedColumns
	case "Multiple":
		return RTMultifield
	}

	return ""
}

// ResourceTypeForValue guesses a widget resource type from a Go type name.
func ResourceTypeForValue(typeName string) string {
	name := strings.TrimPrefix(typeName, "*")

	switch name {
	case "string":
		return RTTextField
	case "bool":
		return RTCheckbox
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64":
		return RTNumberField
	case "time.Time":
		return RTTextField
	}

	if strings.HasPrefix(name, "[]") {
		return ResourceTypeForValue(name[2:])
	}

	return ""
}

var (
	catalogOnce sync.Once
	catalog     *meta.Catalog
)

// All returns a sample value of every kind in registration order.
func All() []any {
	return []any{
		Component{}, Dialog{}, DesignDialog{}, EditConfig{}, ChildEditConfig{}, HTMLTag{},
		DialogField{}, Place{}, Ignore{}, IgnoreFields{}, IgnoreTabs{},
		Tabs{}, Tab{}, Accordion{}, AccordionPanel{}, FixedColumns{}, Column{},
		FieldSet{}, Multiple{}, ResourceType{},
		TextField{}, NumberField{}, Checkbox{}, Select{}, Option{}, TextArea{}, Hidden{}, PathField{},
	}
}

// DefaultCatalog returns the catalog with every kind of this package
// registered.
func DefaultCatalog() *meta.Catalog {
	catalogOnce.Do(func() {
		catalog = meta.DefaultCatalog()
		if err := catalog.Register(All()...); err != nil {
			panic(err)
		}
	})

	return catalog
}

// KindOf returns the registered kind of a sample value.
func KindOf(sample any) *meta.Kind {
	return DefaultCatalog().MustKindOf(reflect.TypeOf(sample))
}

// New returns a descriptor backed by a kind value.
func New(source any) *meta.Descriptor {
	return meta.New(KindOf(source), source)
}
