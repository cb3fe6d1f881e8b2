package compile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/handler"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/source"
	"authoring-kit/internal/target"
	"authoring-kit/internal/widget"
)

// ErrStrict is returned by CompileAll in strict mode when any class
// produced an error diagnostic.
var ErrStrict = errors.New("strict mode: compilation finished with errors")

// Config holds compiler settings.
type Config struct {
	// NamePrefix starts every rendered field name.
	NamePrefix string
	// Scopes restricts the emitted scopes; empty means all.
	Scopes []string
	// StrictMode fails CompileAll when any error diagnostic is recorded.
	StrictMode bool
	// MaxDepth bounds nested dispatch.
	MaxDepth int
}

// DefaultConfig returns the default compiler configuration.
func DefaultConfig() Config {
	return Config{
		NamePrefix: "./",
		MaxDepth:   handler.DefaultMaxDepth,
	}
}

// Root is the tree built for one scope.
type Root struct {
	Scope string
	Node  *target.Node
}

// Result is the outcome of compiling one class.
type Result struct {
	Class       *source.Class
	Roots       []Root
	Diagnostics *diagnostic.Diagnostics
}

// Root returns the tree of scope, or nil.
func (r *Result) Root(scope string) *target.Node {
	for _, root := range r.Roots {
		if root.Scope == scope {
			return root.Node
		}
	}

	return nil
}

// Batch is the outcome of CompileAll.
type Batch struct {
	Results     []*Result
	Diagnostics *diagnostic.Diagnostics
}

// Compiler builds output trees with a fixed registry.
type Compiler struct {
	registry *handler.Registry
	config   Config
	logger   *log.Logger
}

// New creates a compiler. A nil registry means the built-in handlers; a nil
// logger the package logger.
func New(reg *handler.Registry, config Config, logger *log.Logger) *Compiler {
	if reg == nil {
		reg = widget.NewRegistry()
	}

	if logger == nil {
		logger = log.Default()
	}

	return &Compiler{registry: reg, config: config, logger: logger}
}

// Registry returns the handler registry in use.
func (c *Compiler) Registry() *handler.Registry { return c.registry }

func (c *Compiler) scopes() []string {
	if len(c.config.Scopes) == 0 {
		return kinds.Scopes
	}

	var out []string
	for _, s := range kinds.Scopes {
		if slices.Contains(c.config.Scopes, s) {
			out = append(out, s)
		}
	}

	return out
}

// Compile builds the roots of cls. A root is built only for scopes whose
// facet kind the class carries and kept only when something was written.
func (c *Compiler) Compile(cls *source.Class) *Result {
	res := &Result{Class: cls, Diagnostics: &diagnostic.Diagnostics{}}

	for _, issue := range c.registry.Issues() {
		res.Diagnostics.Handle(issue)
	}

	base := handler.NewContext(c.registry, res.Diagnostics, c.logger, handler.Options{
		NamePrefix: c.config.NamePrefix,
		MaxDepth:   c.config.MaxDepth,
	})

	for _, scope := range c.scopes() {
		if !source.Has(cls, kinds.FacetKind(scope)) {
			continue
		}

		root := target.NewRoot(scope, scope)
		base.For(cls, scope).Dispatch(cls, root)

		if root.IsEmpty() {
			c.logger.Debug("empty root dropped", "class", cls.Name(), "scope", scope)
			continue
		}

		res.Roots = append(res.Roots, Root{Scope: scope, Node: root})
	}

	c.logger.Info("compiled", "class", cls.Name(), "roots", len(res.Roots), "diagnostics", res.Diagnostics.Count())

	return res
}

// CompileAll compiles every class. A class whose compilation panics is
// reported and skipped; the others still compile.
func (c *Compiler) CompileAll(classes []*source.Class) (*Batch, error) {
	batch := &Batch{Diagnostics: &diagnostic.Diagnostics{}}

	for _, cls := range classes {
		res, err := c.compileSafe(cls)
		if err != nil {
			batch.Diagnostics.AddError("compile_failed", err.Error(), cls.Name(), "")
			continue
		}

		batch.Diagnostics.Merge(res.Diagnostics)
		batch.Results = append(batch.Results, res)
	}

	if c.config.StrictMode && batch.Diagnostics.HasErrors() {
		return batch, ErrStrict
	}

	return batch, nil
}

func (c *Compiler) compileSafe(cls *source.Class) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("compiling %s: %v", cls.Name(), r)
		}
	}()

	return c.Compile(cls), nil
}
