package placement

import (
	"slices"

	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/handler"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/source"
	"authoring-kit/internal/target"
)

// Attribute names written on section nodes.
const (
	AttrTitle        = "jcr:title"
	AttrResourceType = "sling:resourceType"
	ItemsNode        = "items"
)

// Helper places the members of a host class into a container node.
type Helper struct {
	ctx         *handler.Context
	host        *source.Class
	container   *source.Member
	sections    []*Section
	surrounding bool
}

// NewHelper places the members of host. Host is the compiled class for
// class-level containers and the value class for member containers.
func NewHelper(ctx *handler.Context, host *source.Class) *Helper {
	return &Helper{ctx: ctx, host: host}
}

// WithContainer sets the member holding the container.
func (h *Helper) WithContainer(m *source.Member) *Helper {
	h.container = m
	return h
}

// WithSections switches to multi-section placement.
func (h *Helper) WithSections(sections ...*Section) *Helper {
	h.sections = append(h.sections, sections...)
	return h
}

// WithSurrounding also collects members of the container's declaring class
// whose placement hint addresses one of the sections.
func (h *Helper) WithSurrounding() *Helper {
	h.surrounding = true
	return h
}

// Sections returns the sections with the members assigned by Place.
func (h *Helper) Sections() []*Section { return h.sections }

func (h *Helper) className() string {
	if h.ctx.Class != nil {
		return h.ctx.Class.Name()
	}

	if h.host != nil {
		return h.host.Name()
	}

	return ""
}

// Candidates collects the members to place, ordered by rank. A host that
// is the container's declaring class, or related to it, yields nothing and
// a recursion error.
func (h *Helper) Candidates() []*source.Member {
	if h.host == nil && !h.surrounding {
		return nil
	}

	if h.host != nil && h.container != nil && h.host.IsRelated(h.container.Class()) {
		h.ctx.Report(diagnostic.NewLayoutError(diagnostic.CodeRecursion, h.className(), h.container.Name(),
			"%s cannot hold members of %s: the classes are related", h.container, h.host))

		return nil
	}

	var pool []*source.Member
	if h.host != nil {
		pool = h.host.AllMembers()
	}

	if h.surrounding && h.container != nil {
		for _, m := range h.container.Class().AllMembers() {
			if h.addressesSection(Hint(m)) {
				pool = append(pool, m)
			}
		}
	}

	var claimed []string
	if h.container == nil && h.host != nil {
		claimed = claimedSections(h.host)
	}

	var out []*source.Member

	for _, m := range pool {
		switch {
		case !IsEligible(m):
		case h.container != nil && m.Same(h.container):
		case isIgnored(m, h.host, h.ctx.Class):
		case isDialogScope(h.ctx.Scope) && PlaceScope(m) != h.ctx.Scope:
		case slices.Contains(claimed, Hint(m)) && !h.addressesSection(Hint(m)):
		case slices.Contains(out, m):
		default:
			out = append(out, m)
		}
	}

	SortByRank(out)

	return out
}

func isDialogScope(scope string) bool {
	return scope == kinds.ScopeDialog || scope == kinds.ScopeDesignDialog
}

func (h *Helper) addressesSection(hint string) bool {
	for _, s := range h.sections {
		if s.Matches(hint) {
			return true
		}
	}

	return false
}

// Place renders the candidates into node and returns the members placed.
// Without sections members become direct children of node; otherwise each
// section gets an items node under a node named after it.
func (h *Helper) Place(node *target.Node) []*source.Member {
	candidates := h.Candidates()
	ResolveNameCoincidence(candidates)

	solver := NewCollisionSolver(h.ctx.Sink, h.className())

	if len(h.sections) == 0 {
		solver.Check(candidates)

		for _, m := range candidates {
			h.render(m, node)
		}

		return candidates
	}

	ignored := ignoredSections(h.host, h.ctx.Class)
	processed := make(map[*source.Member]bool, len(candidates))

	var placed []*source.Member

	for i, sec := range h.sections {
		var addressed []*source.Member

		for _, m := range candidates {
			if processed[m] {
				continue
			}

			hint := Hint(m)
			if sec.Matches(hint) || (i == 0 && hint == "") {
				addressed = append(addressed, m)
				processed[m] = true
			}
		}

		merged := append(slices.Clone(sec.members), addressed...)
		if len(sec.members) > 0 && len(addressed) > 0 {
			SortByRank(merged)
		}

		sec.members = merged

		if slices.Contains(ignored, sec.Title()) || slices.Contains(ignored, sec.FullTitle()) {
			continue
		}

		items := h.sectionNode(node, sec).GetOrCreate(ItemsNode)

		solver.Check(merged)

		for _, m := range merged {
			h.render(m, items)
		}

		placed = append(placed, merged...)
	}

	for _, m := range candidates {
		if !processed[m] {
			h.ctx.Report(diagnostic.NewLayoutWarning(diagnostic.CodeMissingSection, h.className(), m.Name(),
				"%s asks for section %q which is not declared", m, Hint(m)))
		}
	}

	return placed
}

func (h *Helper) sectionNode(parent *target.Node, sec *Section) *target.Node {
	n := parent.GetOrCreate(sec.NodeName())
	n.SetString(AttrTitle, sec.Title())

	if sec.IsLayout() {
		n.SetString(AttrResourceType, kinds.RTContainer)
	}

	if d := sec.Descriptor(); d != nil {
		n.Populate(d, nil)
	}

	return n
}

// render dispatches a member into the child of parent named after it.
// Members sharing a name render into the same node.
func (h *Helper) render(m *source.Member, parent *target.Node) {
	h.ctx.Dispatch(m, parent.GetOrCreate(m.EffectiveName()))
}
