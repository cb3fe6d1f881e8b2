package source

import (
	"slices"

	"authoring-kit/internal/common"
	"authoring-kit/internal/meta"
)

// Source is anything that carries descriptors: a class or a member.
type Source interface {
	// Name returns the display name.
	Name() string
	// Descriptors returns the attached descriptors in declaration order.
	Descriptors() []*meta.Descriptor
	// Descriptor returns the first descriptor of the named kind, or nil.
	Descriptor(kind string) *meta.Descriptor
	// Class returns the class itself, or the declaring class of a member.
	Class() *Class
}

type descriptors []*meta.Descriptor

func (ds descriptors) find(kind string) *meta.Descriptor {
	for _, d := range ds {
		if d.Kind().Name() == kind {
			return d
		}
	}

	return nil
}

func (ds descriptors) kinds() []string {
	var out []string

	for _, d := range ds {
		if name := d.Kind().Name(); !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	return out
}

// KindsOf lists the distinct descriptor kind names of src.
func KindsOf(src Source) []string {
	return descriptors(src.Descriptors()).kinds()
}

// Has reports whether src carries a descriptor of the named kind.
func Has(src Source, kind string) bool {
	return src.Descriptor(kind) != nil
}

// Class is a type whose members are placed into the output tree.
type Class struct {
	name        string
	pkg         string
	parent      *Class
	descriptors descriptors
	members     []*Member
}

// NewClass creates a class. Parent may be nil.
func NewClass(name string, parent *Class, ds ...*meta.Descriptor) *Class {
	return &Class{name: name, parent: parent, descriptors: ds}
}

// SetPackage records the import path the class was loaded from.
func (c *Class) SetPackage(pkg string) { c.pkg = pkg }

// Package returns the import path, or "".
func (c *Class) Package() string { return c.pkg }

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// QualifiedName returns the package-qualified name when known.
func (c *Class) QualifiedName() string {
	if c.pkg == "" {
		return c.name
	}

	return c.pkg + "." + c.name
}

// Parent returns the parent class, or nil.
func (c *Class) Parent() *Class { return c.parent }

// Class returns c.
func (c *Class) Class() *Class { return c }

// Descriptors returns the class-level descriptors.
func (c *Class) Descriptors() []*meta.Descriptor { return c.descriptors }

// Descriptor returns the first class-level descriptor of the named kind.
func (c *Class) Descriptor(kind string) *meta.Descriptor { return c.descriptors.find(kind) }

// AddDescriptor attaches a class-level descriptor.
func (c *Class) AddDescriptor(d *meta.Descriptor) {
	c.descriptors = append(c.descriptors, d)
}

// AddMember declares m on c.
func (c *Class) AddMember(m *Member) *Class {
	m.declaring = c
	m.order = len(c.members)
	c.members = append(c.members, m)

	return c
}

// Members returns the members declared on c itself.
func (c *Class) Members() []*Member { return c.members }

// AllMembers returns inherited and own members, the root ancestor's first.
func (c *Class) AllMembers() []*Member {
	var out []*Member

	chain := c.Ancestors()
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].members...)
	}

	return append(out, c.members...)
}

// Ancestors returns the parent chain, closest first.
func (c *Class) Ancestors() []*Class {
	var out []*Class

	for p := c.parent; p != nil; p = p.parent {
		if slices.Contains(out, p) || p == c {
			break
		}

		out = append(out, p)
	}

	return out
}

// Depth is the number of ancestors.
func (c *Class) Depth() int { return len(c.Ancestors()) }

// IsSubclassOf reports whether other is c or one of its ancestors.
func (c *Class) IsSubclassOf(other *Class) bool {
	if c == nil || other == nil {
		return false
	}

	return c == other || slices.Contains(c.Ancestors(), other)
}

// IsRelated reports whether c and other are the same class or one inherits
// from the other.
func (c *Class) IsRelated(other *Class) bool {
	return c.IsSubclassOf(other) || other.IsSubclassOf(c)
}

// String returns the class name.
func (c *Class) String() string { return c.name }

// Member is a field or method of a class.
type Member struct {
	name        string
	kind        MemberKind
	valueType   string
	valueClass  *Class
	declaring   *Class
	descriptors descriptors
	order       int
	renamed     string
}

// NewMember creates a member; AddMember attaches it to its class.
func NewMember(name string, kind MemberKind, valueType string, ds ...*meta.Descriptor) *Member {
	return &Member{name: name, kind: kind, valueType: valueType, descriptors: ds}
}

// Name returns the Go name.
func (m *Member) Name() string { return m.name }

// Kind returns field or method.
func (m *Member) Kind() MemberKind { return m.kind }

// IsField reports whether m is a field.
func (m *Member) IsField() bool { return m.kind == KindField }

// ValueType returns the Go type name of the member value.
func (m *Member) ValueType() string { return m.valueType }

// ValueClass returns the class of a struct-typed value, or nil.
func (m *Member) ValueClass() *Class { return m.valueClass }

// SetValueClass records the class of a struct-typed value.
func (m *Member) SetValueClass(c *Class) *Member {
	m.valueClass = c
	return m
}

// Class returns the declaring class.
func (m *Member) Class() *Class { return m.declaring }

// Order returns the declaration index within the declaring class.
func (m *Member) Order() int { return m.order }

// Descriptors returns the member descriptors.
func (m *Member) Descriptors() []*meta.Descriptor { return m.descriptors }

// Descriptor returns the first member descriptor of the named kind.
func (m *Member) Descriptor(kind string) *meta.Descriptor { return m.descriptors.find(kind) }

// AddDescriptor attaches a member descriptor.
func (m *Member) AddDescriptor(d *meta.Descriptor) *Member {
	m.descriptors = append(m.descriptors, d)
	return m
}

// StrippedName is the getter-agnostic name shared by a field and its
// accessor methods.
func (m *Member) StrippedName() string {
	return common.StripGetter(m.name)
}

// EffectiveName is the name used in the output: the stripped name unless
// renamed.
func (m *Member) EffectiveName() string {
	if m.renamed != "" {
		return m.renamed
	}

	return m.StrippedName()
}

// Rename overrides the effective name.
func (m *Member) Rename(name string) { m.renamed = name }

// Same reports whether both members denote the same member.
func (m *Member) Same(other *Member) bool {
	return other != nil && m.declaring == other.declaring && m.StrippedName() == other.StrippedName()
}

// String renders "Class#member".
func (m *Member) String() string {
	if m.declaring == nil {
		return m.name
	}

	return m.declaring.name + "#" + m.name
}
