package placement

import (
	"authoring-kit/internal/handler"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/source"
	"authoring-kit/internal/target"
)

// Transfer says where an attribute or child of a field goes when the field
// is wrapped into a repeatable one.
type Transfer int

const (
	// MoveToInner moves the item to the inner field.
	MoveToInner Transfer = iota
	// KeepOnWrapper leaves the item on the wrapper.
	KeepOnWrapper
	// CopyToInner keeps the item on the wrapper and copies it to the inner
	// field.
	CopyToInner
)

// Inner node name and attributes written by RewriteMultiple.
const (
	InnerField    = "field"
	AttrComposite = "composite"
	AttrName      = "name"
)

var attributeTransfers = map[string]Transfer{
	target.KindAttr:    CopyToInner,
	"disabled":         CopyToInner,
	"renderHidden":     CopyToInner,
	"fieldLabel":       KeepOnWrapper,
	"fieldDescription": KeepOnWrapper,
	"jcr:title":        KeepOnWrapper,
	"required":         KeepOnWrapper,
	"wrapperClass":     KeepOnWrapper,
	"granite:class":    KeepOnWrapper,
	AttrComposite:      KeepOnWrapper,
	"deleteHint":       KeepOnWrapper,
	"typeHint":         KeepOnWrapper,
}

var childTransfers = map[string]Transfer{
	"granite:data": CopyToInner,
}

// repeatableAttributes belong to a repeatable field itself. When an existing
// repeatable gets wrapped they move to the inner field with it.
var repeatableAttributes = map[string]bool{
	AttrComposite: true,
	"deleteHint":  true,
	"typeHint":    true,
}

// AttributeTransfer returns the transfer policy of an attribute.
func AttributeTransfer(name string) Transfer {
	if t, ok := attributeTransfers[name]; ok {
		return t
	}

	return MoveToInner
}

// ChildTransfer returns the transfer policy of a child node.
func ChildTransfer(name string) Transfer {
	if t, ok := childTransfers[name]; ok {
		return t
	}

	return MoveToInner
}

// IsRepeatableLike reports whether node already has the shape of a
// repeatable field: a multifield resource type or a single "field" child.
func IsRepeatableLike(node *target.Node) bool {
	if node.Attr(AttrResourceType) == kinds.RTMultifield {
		return true
	}

	children := node.Children()

	return len(children) == 1 && children[0].RequestedName() == InnerField
}

// RewriteMultiple turns a rendered field node into a repeatable wrapper and
// returns the inner field. The content of node moves into a "field" child
// following the transfer tables; an existing repeatable ends up nested one
// level deeper, taking its composite flag and hints along, and a fieldset
// becomes a plain container. The wrapper is
// marked composite, loses its name and gets the repeatable-only handlers
// run against it.
func RewriteMultiple(ctx *handler.Context, src source.Source, node *target.Node) *target.Node {
	nested := IsRepeatableLike(node)
	fieldset := node.Attr(AttrResourceType) == kinds.RTFieldSet

	var moved []*target.Node

	for _, child := range node.Children() {
		switch ChildTransfer(child.RequestedName()) {
		case MoveToInner:
			child.Detach()
			moved = append(moved, child)
		case CopyToInner:
			moved = append(moved, child.Clone())
		case KeepOnWrapper:
		}
	}

	inner := node.CreateChild(InnerField)

	for _, name := range node.AttributeNames() {
		value := node.Attr(name)

		transfer := AttributeTransfer(name)
		if nested && repeatableAttributes[name] {
			transfer = MoveToInner
		}

		switch transfer {
		case MoveToInner:
			inner.SetAttribute(name, value)
			node.RemoveAttribute(name)
		case CopyToInner:
			inner.SetAttribute(name, value)
		case KeepOnWrapper:
		}
	}

	for _, child := range moved {
		// Moved nodes are detached and cannot form a cycle.
		_ = inner.AddChild(child, -1)
	}

	if fieldset {
		inner.SetAttribute(AttrResourceType, kinds.RTContainer)
	}

	ctx.Logger.Debug("repeatable rewrite", "node", node.Path(), "nested", nested, "fieldset", fieldset)

	node.SetAttribute(AttrResourceType, kinds.RTMultifield)
	node.SetBool(AttrComposite, true)
	node.RemoveAttribute(AttrName)

	ctx.DispatchRepeatable(src, node)

	return inner
}
