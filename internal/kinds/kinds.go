package kinds

import "authoring-kit/internal/meta"

// Component describes the component definition written to .content.
type Component struct {
	Title             string `meta:"title,attr=jcr:title"`
	Description       string `meta:"description,attr=jcr:description"`
	Group             string `meta:"group,attr=componentGroup"`
	ResourceSuperType string `meta:"resourceSuperType,attr=sling:resourceSuperType"`
	IsContainer       bool   `meta:"isContainer,attr=cq:isContainer"`
	NoDecoration      bool   `meta:"noDecoration,attr=cq:noDecoration"`
}

// Dialog describes the authoring dialog of a class.
type Dialog struct {
	Title    string `meta:"title,attr=jcr:title"`
	HelpPath string `meta:"helpPath"`
	Width    int    `meta:"width"`
	Height   int    `meta:"height"`
}

// DesignDialog describes the design (policy) dialog of a class.
type DesignDialog struct {
	Title    string `meta:"title,attr=jcr:title"`
	HelpPath string `meta:"helpPath"`
	Width    int    `meta:"width"`
	Height   int    `meta:"height"`
}

// EditConfig describes in-place editing behavior.
type EditConfig struct {
	Actions    []string `meta:"actions,attr=cq:actions,list"`
	DialogMode string   `meta:"dialogMode,attr=cq:dialogMode"`
	Layout     string   `meta:"layout,attr=cq:layout"`
	EmptyText  string   `meta:"emptyText,attr=cq:emptyText"`
	Inherit    bool     `meta:"inherit,attr=cq:inherit"`
}

// ChildEditConfig describes editing of child components.
type ChildEditConfig struct {
	Actions []string `meta:"actions,attr=cq:actions,list"`
}

// HTMLTag describes the wrapper element of a rendered component.
type HTMLTag struct {
	TagName string `meta:"tagName,attr=cq:tagName" default:"div"`
	Class   string `meta:"class"`
}

// DialogField marks a member as an authoring field.
type DialogField struct {
	Label        string   `meta:"label,attr=fieldLabel"`
	Description  string   `meta:"description,attr=fieldDescription"`
	Name         string   `meta:"name,skip"`
	Required     bool     `meta:"required"`
	Disabled     bool     `meta:"disabled"`
	RenderHidden bool     `meta:"renderHidden"`
	Ranking      int      `meta:"ranking,skip"`
	WrapperClass string   `meta:"wrapperClass"`
	Classes      []string `meta:"classes,attr=granite:class,list"`
}

// Place routes a member into the named section of a container. Scope picks
// the dialog the member belongs to.
type Place struct {
	Value string `meta:"value"`
	Scope string `meta:"scope" default:"cq:dialog"`
}

// Ignore excludes a member from placement.
type Ignore struct{}

// IgnoreFields excludes members of the class, inherited ones included, by
// name.
type IgnoreFields struct {
	Value []string `meta:"value"`
}

// IgnoreTabs excludes sections of the class containers by title.
type IgnoreTabs struct {
	Value []string `meta:"value"`
}

// Tab is one section of a Tabs container.
type Tab struct {
	Title   string `meta:"title,attr=jcr:title"`
	Padding bool   `meta:"padding,attr=margin"`
}

// Tabs is a tabbed container.
type Tabs struct {
	Value       []Tab  `meta:"value"`
	Orientation string `meta:"orientation"`
}

// AccordionPanel is one section of an Accordion container.
type AccordionPanel struct {
	Title    string `meta:"title,attr=jcr:title"`
	Disabled bool   `meta:"disabled"`
	Opened   bool   `meta:"opened,node=parentConfig,attr=active"`
}

// Accordion is a container of collapsible panels.
type Accordion struct {
	Value   []AccordionPanel `meta:"value"`
	Variant string           `meta:"variant"`
	Margin  bool             `meta:"margin"`
}

// Column is one section of a FixedColumns container.
type Column struct {
	Title string `meta:"title,attr=jcr:title"`
}

// FixedColumns lays sections out side by side.
type FixedColumns struct {
	Value []Column `meta:"value"`
}

// FieldSet groups the fields of a member value type.
type FieldSet struct {
	Title       string `meta:"title,attr=jcr:title"`
	NamePrefix  string `meta:"namePrefix,skip"`
	NamePostfix string `meta:"namePostfix,skip"`
}

// Multiple turns a field into a repeatable one.
type Multiple struct {
	DeleteHint bool   `meta:"deleteHint" default:"true"`
	TypeHint   string `meta:"typeHint"`
}

// ResourceType sets the widget resource type of a member explicitly.
type ResourceType struct {
	Value string `meta:"value,attr=sling:resourceType"`
}

// TextField is a single line text input.
type TextField struct {
	EmptyText    string `meta:"emptyText"`
	MaxLength    int    `meta:"maxLength,attr=maxlength"`
	Value        string `meta:"value"`
	Autocomplete string `meta:"autocomplete"`
	Validation   string `meta:"validation"`
}

// NumberField is a numeric input.
type NumberField struct {
	Min   float64 `meta:"min"`
	Max   float64 `meta:"max"`
	Step  float64 `meta:"step" default:"1"`
	Value string  `meta:"value"`
}

// Checkbox is a boolean input.
type Checkbox struct {
	Text           string `meta:"text"`
	Checked        bool   `meta:"checked"`
	Value          string `meta:"value" default:"true"`
	UncheckedValue string `meta:"uncheckedValue" default:"false"`
}

// Option is one choice of a Select.
type Option struct {
	Text     string `meta:"text"`
	Value    string `meta:"value"`
	Selected bool   `meta:"selected"`
}

// Select is a drop-down list.
type Select struct {
	Options   []Option     `meta:"options,skip"`
	Multiple  bool         `meta:"multiple"`
	EmptyText string       `meta:"emptyText"`
	Source    meta.TypeRef `meta:"source,attr=datasource"`
}

// TextArea is a multi line text input.
type TextArea struct {
	EmptyText string `meta:"emptyText"`
	Rows      int    `meta:"rows" default:"5"`
	MaxLength int    `meta:"maxLength,attr=maxlength"`
	Resize    string `meta:"resize"`
}

// Hidden is a hidden input.
type Hidden struct {
	Value string `meta:"value"`
}

// PathField is a repository path picker.
type PathField struct {
	RootPath  string `meta:"rootPath"`
	EmptyText string `meta:"emptyText"`
}
