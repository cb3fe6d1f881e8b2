package analyze

import (
	"go/types"
	"strings"
)

// TypePath builds a readable path string for a member.
// Examples:
//   - "Teaser" for a class
//   - "Teaser.Links" for a member
//   - "Teaser.Links[]" for the elements of a slice member
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Slice appends a slice indicator "[]" to the path.
func (p *TypePath) Slice() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"[]"}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] += "[]"

	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

func memberPath(class, member string) string {
	if member == "" {
		return class
	}

	return NewTypePath(class).Field(member).String()
}

// TypeStringer renders member value types. Types of loaded packages print
// unqualified, others with their package name.
type TypeStringer struct {
	local func(pkgPath string) bool
}

// NewTypeStringer creates a TypeStringer; local reports loaded packages.
func NewTypeStringer(local func(pkgPath string) bool) *TypeStringer {
	return &TypeStringer{local: local}
}

// TypeString returns a human-readable string representation of t.
func (s *TypeStringer) TypeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}

	return types.TypeString(t, func(p *types.Package) string {
		if s.local != nil && s.local(p.Path()) {
			return ""
		}

		return p.Name()
	})
}
