package placement

import (
	"strings"

	"authoring-kit/internal/common"
	"authoring-kit/internal/meta"
	"authoring-kit/internal/source"
)

// TitleSeparator joins section titles into a full title.
const TitleSeparator = "/"

// Section is a named placement target inside a container.
type Section struct {
	title      string
	parent     *Section
	layout     bool
	members    []*source.Member
	descriptor *meta.Descriptor
}

// NewSection creates a section. Parent may be nil.
func NewSection(title string, layout bool, parent *Section) *Section {
	return &Section{title: title, layout: layout, parent: parent}
}

// SectionsOf builds layout sections from the "value" array of a container
// descriptor such as Tabs or Accordion.
func SectionsOf(d *meta.Descriptor, parent *Section) []*Section {
	if d == nil {
		return nil
	}

	var out []*Section

	for _, nd := range d.Descriptors("value") {
		s := NewSection(nd.String("title"), true, parent)
		s.descriptor = nd
		out = append(out, s)
	}

	return out
}

// Title returns the short title.
func (s *Section) Title() string { return s.title }

// FullTitle joins the titles of all ancestor sections and this one.
func (s *Section) FullTitle() string {
	if s.parent == nil {
		return s.title
	}

	return s.parent.FullTitle() + TitleSeparator + s.title
}

// IsLayout tells structural sections from plain groupings.
func (s *Section) IsLayout() bool { return s.layout }

// Parent returns the enclosing section, or nil.
func (s *Section) Parent() *Section { return s.parent }

// Descriptor returns the section descriptor, or nil.
func (s *Section) Descriptor() *meta.Descriptor { return s.descriptor }

// Members returns the members assigned so far.
func (s *Section) Members() []*source.Member { return s.members }

// Matches reports whether a placement hint addresses this section by short
// or full title.
func (s *Section) Matches(hint string) bool {
	hint = strings.Trim(hint, TitleSeparator)
	return hint != "" && (hint == s.title || hint == s.FullTitle())
}

// NodeName returns the node name the section renders under.
func (s *Section) NodeName() string {
	return common.SanitizeNodeName(s.title, "section")
}

func (s *Section) String() string { return s.FullTitle() }
