package placement

import (
	"slices"
	"sort"
	"strings"

	"authoring-kit/internal/common"
	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/source"
)

// CollisionSolver checks one level of members, already in placement order,
// for same-named members that conflict.
type CollisionSolver struct {
	sink  diagnostic.Sink
	class string
}

// NewCollisionSolver reports to sink on behalf of class.
func NewCollisionSolver(sink diagnostic.Sink, class string) *CollisionSolver {
	if sink == nil {
		sink = diagnostic.Discard
	}

	return &CollisionSolver{sink: sink, class: class}
}

// Check reports ambiguous order and resource type collisions among members
// and returns the number of problems found. The order of members is kept.
func (s *CollisionSolver) Check(members []*source.Member) int {
	found := 0

	names, groups := common.GroupBy(members, (*source.Member).StrippedName)
	for _, name := range names {
		group := groups[name]
		if len(group) < 2 {
			continue
		}

		if s.checkOrder(name, group) {
			found++
		}

		found += s.checkResourceTypes(name, group)
	}

	return found
}

// checkOrder compares the member rendered last with the member declared
// closest to the subclass. When they differ, an ancestor shadows a
// descendant.
func (s *CollisionSolver) checkOrder(name string, group []*source.Member) bool {
	byRank := group[len(group)-1]

	byOrigin := slices.Clone(group)
	sort.SliceStable(byOrigin, func(i, j int) bool {
		return byOrigin[i].Class().Depth() < byOrigin[j].Class().Depth()
	})

	closest := byOrigin[len(byOrigin)-1]
	if byRank.Class() == closest.Class() {
		return false
	}

	s.sink.Handle(diagnostic.NewLayoutWarning(diagnostic.CodeAmbiguousOrder, s.class, name,
		"%s is ranked after %s and overrides it, though %s is declared in a subclass",
		byRank, closest, closest.Class()))

	return true
}

func (s *CollisionSolver) checkResourceTypes(name string, group []*source.Member) int {
	found := 0

	_, byKind := common.GroupBy(group, (*source.Member).Kind)
	for _, kind := range []source.MemberKind{source.KindField, source.KindMethod} {
		var types []string

		for _, m := range byKind[kind] {
			if rt := ResourceTypeOf(m); rt != "" && !slices.Contains(types, rt) {
				types = append(types, rt)
			}
		}

		if len(types) < 2 {
			continue
		}

		s.sink.Handle(diagnostic.NewLayoutError(diagnostic.CodeResourceTypeCollision, s.class, name,
			"%s members named %q render with different resource types: %s",
			strings.ToLower(kind.String()), name, strings.Join(types, ", ")))

		found++
	}

	return found
}

// ResolveNameCoincidence renames methods that share a name with a field of
// the same or an ancestor class but render with another resource type. The
// new name is the field name plus the last segment of the method resource
// type, so methods of one resource type end up in one node.
func ResolveNameCoincidence(members []*source.Member) {
	for _, f := range members {
		if !f.IsField() {
			continue
		}

		fieldRT := ResourceTypeOf(f)

		for _, m := range members {
			if m.IsField() || m.StrippedName() != f.StrippedName() || !m.Class().IsSubclassOf(f.Class()) {
				continue
			}

			rt := ResourceTypeOf(m)
			if rt == "" || rt == fieldRT {
				continue
			}

			m.Rename(f.StrippedName() + renameSuffix(rt))
		}
	}
}
