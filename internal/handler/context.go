package handler

import (
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/log"

	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/source"
	"authoring-kit/internal/target"
)

// DefaultMaxDepth bounds nested dispatch through containers.
const DefaultMaxDepth = 32

// Options carries compiler settings handlers read.
type Options struct {
	// NamePrefix starts every rendered field name, e.g. "./".
	NamePrefix string
	// MaxDepth bounds nested dispatch; zero means DefaultMaxDepth.
	MaxDepth int
}

// Context is handed to every handler of one compilation. It is not safe for
// concurrent use; the registry and the sink it points to are.
type Context struct {
	Registry *Registry
	Sink     diagnostic.Sink
	Logger   *log.Logger
	Options  Options

	// Scope is the scope of the root being built.
	Scope string
	// Class is the class being compiled.
	Class *source.Class

	depth int
}

// NewContext creates the context of one class and scope.
func NewContext(reg *Registry, sink diagnostic.Sink, logger *log.Logger, opts Options) *Context {
	if sink == nil {
		sink = diagnostic.Discard
	}

	if logger == nil {
		logger = log.Default()
	}

	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return &Context{Registry: reg, Sink: sink, Logger: logger, Options: opts}
}

// For returns a copy of ctx bound to a class and scope.
func (c *Context) For(cls *source.Class, scope string) *Context {
	next := *c
	next.Class = cls
	next.Scope = scope

	return &next
}

// Depth returns the current nesting of Dispatch calls.
func (c *Context) Depth() int { return c.depth }

// Report hands err to the sink. Nil errors are ignored.
func (c *Context) Report(err error) {
	if err == nil {
		return
	}

	c.Logger.Debug("diagnostic", "scope", c.Scope, "err", err)
	c.Sink.Handle(err)
}

func (c *Context) className() string {
	if c.Class == nil {
		return ""
	}

	return c.Class.Name()
}

func (c *Context) classKinds() []string {
	if c.Class == nil {
		return nil
	}

	return source.KindsOf(c.Class)
}

// Dispatch runs the handlers applicable to src against node.
func (c *Context) Dispatch(src source.Source, node *target.Node) {
	c.dispatch(src, node, false)
}

// DispatchRepeatable runs the repeatable-only handlers applicable to src.
func (c *Context) DispatchRepeatable(src source.Source, node *target.Node) {
	c.dispatch(src, node, true)
}

func (c *Context) dispatch(src source.Source, node *target.Node, repeatable bool) {
	if c.depth >= c.Options.MaxDepth {
		c.Report(diagnostic.NewLayoutError(diagnostic.CodeRecursion, c.className(), src.Name(),
			"nesting deeper than %d levels", c.Options.MaxDepth))

		return
	}

	regs := c.Registry.Select(Query{
		Scope:      c.Scope,
		Kinds:      source.KindsOf(src),
		ClassKinds: c.classKinds(),
		Repeatable: repeatable,
	})

	if len(regs) == 0 {
		return
	}

	c.Logger.Debug("dispatch", "source", src.Name(), "scope", c.Scope, "handlers", names(regs))

	inner := *c
	inner.depth++

	for _, reg := range regs {
		inner.run(reg, src, node)
	}
}

func (c *Context) run(reg Registration, src source.Source, node *target.Node) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Debug("handler panic", "handler", reg.Name, "stack", string(debug.Stack()))
			c.Report(diagnostic.NewLayoutError(diagnostic.CodeHandlerPanic, c.className(), src.Name(),
				"handler %s panicked: %v", reg.Name, r))
		}
	}()

	if err := reg.Handler.Handle(c, src, node); err != nil {
		c.Report(fmt.Errorf("%s: %w", reg.Name, err))
	}
}

func names(regs []Registration) []string {
	out := make([]string, len(regs))
	for i, r := range regs {
		out[i] = r.Name
	}

	return out
}
