package widget

import (
	"fmt"
	"strconv"

	"authoring-kit/internal/common"
	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/handler"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/meta"
	"authoring-kit/internal/placement"
	"authoring-kit/internal/source"
	"authoring-kit/internal/target"
)

func asMember(src source.Source) (*source.Member, error) {
	m, ok := src.(*source.Member)
	if !ok {
		return nil, fmt.Errorf("%s is not a class member", src.Name())
	}

	return m, nil
}

func isContainer(m *source.Member) bool {
	for _, kind := range kinds.Containers {
		if source.Has(m, kind) {
			return true
		}
	}

	return false
}

// handleDialogField writes the field name and the DialogField properties.
// Containers carry no name.
func handleDialogField(ctx *handler.Context, src source.Source, node *target.Node) error {
	m, err := asMember(src)
	if err != nil {
		return err
	}

	d := m.Descriptor("DialogField")

	if !isContainer(m) {
		name := d.String("name")
		if name == "" {
			name = m.EffectiveName()
		}

		node.SetString(placement.AttrName, ctx.Options.NamePrefix+node.ComposeName(name))
	}

	node.Populate(d, nil)

	return nil
}

// handleWidget sets the resource type and the properties of widget kinds.
func handleWidget(_ *handler.Context, src source.Source, node *target.Node) error {
	m, err := asMember(src)
	if err != nil {
		return err
	}

	if rt := placement.ResourceTypeOf(m); rt != "" {
		node.SetString(placement.AttrResourceType, rt)
	}

	for _, kind := range kinds.Widgets() {
		d := m.Descriptor(kind)
		if d == nil {
			continue
		}

		node.Populate(d, nil)

		if kind == "Select" {
			writeOptions(d.Descriptors("options"), node)
		}
	}

	return nil
}

func writeOptions(options []*meta.Descriptor, node *target.Node) {
	if len(options) == 0 {
		return
	}

	items := node.GetOrCreate(placement.ItemsNode)

	for i, o := range options {
		name := common.SanitizeNodeName(o.String("value"), "option"+strconv.Itoa(i))
		items.CreateChild(name).Populate(o, nil)
	}
}

// handleFieldSet places the members of the value class into items, under
// the name prefix and postfix of the descriptor.
func handleFieldSet(ctx *handler.Context, src source.Source, node *target.Node) error {
	m, err := asMember(src)
	if err != nil {
		return err
	}

	d := m.Descriptor("FieldSet")

	node.SetString(placement.AttrResourceType, kinds.RTFieldSet)
	node.Populate(d, nil)

	host := m.ValueClass()
	if host == nil {
		return diagnostic.NewLayoutError(diagnostic.CodeInvalidDescriptor, ctx.Class.Name(), m.Name(),
			"fieldset %s needs a struct value type, got %s", m, m.ValueType())
	}

	items := node.GetOrCreate(placement.ItemsNode)
	items.SetNamePrefix(d.String("namePrefix")).SetNamePostfix(d.String("namePostfix"))

	placement.NewHelper(ctx, host).WithContainer(m).Place(items)

	return nil
}

// sectionHandler places members of the value class, and members of the
// surrounding class that address its sections, into the sections of a
// Tabs, Accordion or FixedColumns member.
func sectionHandler(kind string) handler.Handler {
	return handler.Func(func(ctx *handler.Context, src source.Source, node *target.Node) error {
		// Class-level section containers are laid out by the dialog handler.
		m, ok := src.(*source.Member)
		if !ok {
			return nil
		}

		d := m.Descriptor(kind)

		node.SetString(placement.AttrResourceType, kinds.ResourceTypeOf(kind))
		node.Populate(d, nil)

		placement.NewHelper(ctx, m.ValueClass()).
			WithContainer(m).
			WithSections(placement.SectionsOf(d, nil)...).
			WithSurrounding().
			Place(node.GetOrCreate(placement.ItemsNode))

		return nil
	})
}

func handleMultiple(ctx *handler.Context, src source.Source, node *target.Node) error {
	m, err := asMember(src)
	if err != nil {
		return err
	}

	placement.RewriteMultiple(ctx, m, node)

	return nil
}

// handleMultipleField writes the Multiple properties onto the wrapper.
func handleMultipleField(_ *handler.Context, src source.Source, node *target.Node) error {
	node.Populate(src.Descriptor("Multiple"), nil)
	return nil
}
