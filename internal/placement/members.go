package placement

import (
	"slices"
	"sort"
	"strings"

	"authoring-kit/internal/common"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/source"
)

// Rank returns the declared ranking of a member, 0 when none.
func Rank(m *source.Member) int {
	if d := m.Descriptor("DialogField"); d != nil {
		return int(d.Int("ranking"))
	}

	return 0
}

// Hint returns the section a member asks to be placed into, or "".
func Hint(m *source.Member) string {
	if d := m.Descriptor("Place"); d != nil {
		return d.String("value")
	}

	return ""
}

// PlaceScope returns the dialog scope a member belongs to.
func PlaceScope(m *source.Member) string {
	if d := m.Descriptor("Place"); d != nil {
		if s := d.String("scope"); s != "" {
			return s
		}
	}

	return kinds.ScopeDialog
}

// SortByRank orders members by rank, keeping declaration order for ties.
func SortByRank(members []*source.Member) {
	sort.SliceStable(members, func(i, j int) bool {
		return Rank(members[i]) < Rank(members[j])
	})
}

// ResourceTypeOf resolves the widget resource type a member renders with:
// an explicit ResourceType, then widget and container kinds, then a guess
// from the value type.
func ResourceTypeOf(m *source.Member) string {
	if d := m.Descriptor("ResourceType"); d != nil {
		if rt := d.String("value"); rt != "" {
			return rt
		}
	}

	for _, kind := range append(kinds.Widgets(), kinds.Containers...) {
		if source.Has(m, kind) {
			return kinds.ResourceTypeOf(kind)
		}
	}

	return kinds.ResourceTypeForValue(m.ValueType())
}

var eligibleKinds = slices.Concat(
	[]string{"DialogField", "ResourceType", "Multiple"},
	kinds.Containers,
	kinds.Widgets(),
)

// IsEligible reports whether a member carries a kind that renders it.
func IsEligible(m *source.Member) bool {
	for _, k := range source.KindsOf(m) {
		if slices.Contains(eligibleKinds, k) {
			return true
		}
	}

	return false
}

// isIgnored reports whether m is ignored on itself or by an IgnoreFields
// descriptor of one of the given classes or their ancestors.
func isIgnored(m *source.Member, classes ...*source.Class) bool {
	if source.Has(m, "Ignore") {
		return true
	}

	for _, c := range slices.Concat(classes, []*source.Class{m.Class()}) {
		for cur := c; cur != nil; cur = cur.Parent() {
			d := cur.Descriptor("IgnoreFields")
			if d == nil {
				continue
			}

			for _, name := range d.Strings("value") {
				if name == m.Name() || name == m.StrippedName() {
					return true
				}
			}
		}
	}

	return false
}

// ignoredSections lists the section titles ignored by the given classes.
func ignoredSections(classes ...*source.Class) []string {
	var out []string

	for _, c := range classes {
		for cur := c; cur != nil; cur = cur.Parent() {
			if d := cur.Descriptor("IgnoreTabs"); d != nil {
				out = append(out, d.Strings("value")...)
			}
		}
	}

	return out
}

// claimedSections lists the titles of sections declared by member
// containers of c.
func claimedSections(c *source.Class) []string {
	var out []string

	for _, m := range c.AllMembers() {
		for _, kind := range kinds.SectionContainers {
			for _, s := range SectionsOf(m.Descriptor(kind), nil) {
				out = append(out, s.Title())
			}
		}
	}

	return out
}

// renameSuffix is the suffix a method renamed for its resource type gets.
func renameSuffix(rt string) string {
	return "_" + strings.ToLower(common.LastSegment(rt))
}
