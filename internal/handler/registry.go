package handler

import (
	"slices"

	"authoring-kit/internal/source"
	"authoring-kit/internal/target"
)

// AnyScope matches every scope when listed in Registration.Scopes.
const AnyScope = "*"

// Handler fills node from the descriptors of src. A returned error is
// reported and the chain continues.
type Handler interface {
	Handle(ctx *Context, src source.Source, node *target.Node) error
}

// Func adapts a function to the Handler interface.
type Func func(ctx *Context, src source.Source, node *target.Node) error

// Handle calls f.
func (f Func) Handle(ctx *Context, src source.Source, node *target.Node) error {
	return f(ctx, src, node)
}

// Registration declares a handler and where it applies.
type Registration struct {
	// Name identifies the handler in Before and After relations.
	Name    string
	Handler Handler
	// Kinds lists the descriptor kinds the handler reacts to. An empty list
	// matches every source.
	Kinds []string
	// Scopes lists the scopes the handler writes to. When empty the scopes
	// are inferred from Kinds.
	Scopes []string
	// Before and After name handlers this one must run before or after.
	Before []string
	After  []string
	// Repeatable handlers run only on nodes rewritten into repeatable ones.
	Repeatable bool
}

// ScopeTable returns the scopes usually associated with a descriptor kind.
type ScopeTable func(kind string) []string

// Query selects handlers for one source.
type Query struct {
	Scope string
	// Kinds are the descriptor kinds present on the source.
	Kinds []string
	// ClassKinds are the kinds present on the class being compiled; they
	// feed scope inference for handlers whose own kinds have none.
	ClassKinds []string
	Repeatable bool
}

// Registry is an ordered, immutable set of registrations.
type Registry struct {
	regs   []Registration
	scopes ScopeTable
	issues []error
}

// NewRegistry orders regs and fixes the scope table used for inference.
// Ordering problems are kept and returned by Issues.
func NewRegistry(regs []Registration, scopes ScopeTable) *Registry {
	ordered, issues := orderRegistrations(regs)

	return &Registry{regs: ordered, scopes: scopes, issues: issues}
}

// Issues returns the problems met while ordering the registrations.
func (r *Registry) Issues() []error { return r.issues }

// Len returns the number of registrations.
func (r *Registry) Len() int { return len(r.regs) }

// Names returns the registration names in run order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.regs))
	for i, reg := range r.regs {
		out[i] = reg.Name
	}

	return out
}

// Registrations returns a copy of the registrations in run order.
func (r *Registry) Registrations() []Registration {
	return slices.Clone(r.regs)
}

// Select returns the handlers applicable to q, in run order.
func (r *Registry) Select(q Query) []Registration {
	var out []Registration

	for _, reg := range r.regs {
		if reg.Repeatable != q.Repeatable {
			continue
		}

		if !matchesKinds(reg, q.Kinds) {
			continue
		}

		if !r.matchesScope(reg, q) {
			continue
		}

		out = append(out, reg)
	}

	return out
}

func matchesKinds(reg Registration, present []string) bool {
	if len(reg.Kinds) == 0 {
		return true
	}

	for _, k := range reg.Kinds {
		if slices.Contains(present, k) {
			return true
		}
	}

	return false
}

// Scopes returns the declared or inferred scopes of reg for a class holding
// classKinds. An empty result means any scope.
func (r *Registry) Scopes(reg Registration, classKinds []string) []string {
	if len(reg.Scopes) > 0 {
		return reg.Scopes
	}

	if r.scopes == nil {
		return nil
	}

	if inferred := r.collectScopes(reg.Kinds); len(inferred) > 0 {
		return inferred
	}

	return r.collectScopes(classKinds)
}

func (r *Registry) collectScopes(kinds []string) []string {
	var out []string

	for _, k := range kinds {
		for _, s := range r.scopes(k) {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}

	return out
}

func (r *Registry) matchesScope(reg Registration, q Query) bool {
	scopes := r.Scopes(reg, q.ClassKinds)

	return len(scopes) == 0 || slices.Contains(scopes, AnyScope) || slices.Contains(scopes, q.Scope)
}
