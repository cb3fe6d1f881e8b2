package widget

import (
	"fmt"

	"authoring-kit/internal/handler"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/placement"
	"authoring-kit/internal/source"
	"authoring-kit/internal/target"
)

// Node types written into the kind marker of facet roots.
const (
	TypeComponent  = "cq:Component"
	TypeEditConfig = "cq:EditConfig"
)

const defaultTagName = "div"

func asClass(src source.Source) (*source.Class, error) {
	cls, ok := src.(*source.Class)
	if !ok {
		return nil, fmt.Errorf("%s is not a class", src.Name())
	}

	return cls, nil
}

func handleComponent(_ *handler.Context, src source.Source, node *target.Node) error {
	d := src.Descriptor("Component")

	node.SetString(target.KindAttr, TypeComponent)
	node.Populate(d, nil)

	return nil
}

func handleEditConfig(ctx *handler.Context, src source.Source, node *target.Node) error {
	d := src.Descriptor(kinds.FacetKind(ctx.Scope))
	if d == nil {
		return nil
	}

	node.SetString(target.KindAttr, TypeEditConfig)
	node.Populate(d, nil)

	return nil
}

func handleHTMLTag(_ *handler.Context, src source.Source, node *target.Node) error {
	d := src.Descriptor("HTMLTag")

	tag := d.String("tagName")
	if tag == "" {
		tag = defaultTagName
	}

	node.SetString("cq:tagName", tag)
	node.Populate(d, nil)

	return nil
}

// handleDialog writes a dialog root and places the class members under
// content/items, through a class-level section container when one is
// declared.
func handleDialog(ctx *handler.Context, src source.Source, node *target.Node) error {
	cls, err := asClass(src)
	if err != nil {
		return err
	}

	d := cls.Descriptor(kinds.FacetKind(ctx.Scope))
	if d == nil {
		return nil
	}

	node.SetString(placement.AttrResourceType, kinds.RTDialog)
	node.Populate(d, nil)

	content := node.GetOrCreate("content")
	content.SetString(placement.AttrResourceType, kinds.RTContainer)

	items := content.GetOrCreate(placement.ItemsNode)

	for _, kind := range kinds.SectionContainers {
		cd := cls.Descriptor(kind)
		if cd == nil {
			continue
		}

		container := items.GetOrCreate(containerNodeName(kind))
		container.SetString(placement.AttrResourceType, kinds.ResourceTypeOf(kind))
		container.Populate(cd, nil)

		placement.NewHelper(ctx, cls).
			WithSections(placement.SectionsOf(cd, nil)...).
			Place(container.GetOrCreate(placement.ItemsNode))

		return nil
	}

	placement.NewHelper(ctx, cls).Place(items)

	return nil
}

func containerNodeName(kind string) string {
	switch kind {
	case "Tabs":
		return "tabs"
	case "Accordion":
		return "accordion"
	default:
		return "columns"
	}
}
