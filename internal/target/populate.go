package target

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"authoring-kit/internal/meta"
)

// Filter decides whether a property takes part in population.
type Filter func(p meta.Property) bool

// Populate writes the declared properties of d as attributes of n. Skipped
// are properties tagged skip, rejected by filter, holding nested
// descriptors, or equal to their default. A property with a node path is
// written under that sub-node. It returns the number of attributes written.
func (n *Node) Populate(d *meta.Descriptor, filter Filter) int {
	if d == nil {
		return 0
	}

	written := 0

	for _, p := range d.Iterate(false, false) {
		spec := p.Spec
		if spec.Skip || spec.IsDescriptor() || spec.ElemIsDescriptor() {
			continue
		}

		if filter != nil && !filter(p) {
			continue
		}

		if p.IsDefault() {
			continue
		}

		value, ok := RenderValue(p.Value)
		if !ok {
			continue
		}

		dest := n
		if spec.Node != "" {
			dest = n.GetOrCreate(spec.Node)
		}

		merger := DefaultMerger
		if spec.ListMerge {
			merger = ListMerger
		}

		dest.SetAttributeWith(spec.Attr, value, merger)

		written++
	}

	return written
}

// RenderValue renders a property value as an attribute string. Nil values,
// nested descriptors and unselected type references do not render.
func RenderValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil, *meta.Descriptor, []*meta.Descriptor:
		return "", false
	case meta.TypeRef:
		return string(x), x != "" && x != meta.NoSelection
	case time.Time:
		return HintDate + x.Format(DateLayout), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		hint, text, ok := renderScalar(rv)
		return hint + text, ok
	}

	hint := ""
	items := make([]string, 0, rv.Len())

	for i := range rv.Len() {
		h, text, ok := renderScalar(rv.Index(i))
		if !ok {
			return "", false
		}

		hint = h

		items = append(items, text)
	}

	if hint == "" {
		hint = sliceHint(rv.Type().Elem())
	}

	return hint + "[" + strings.Join(items, ",") + "]", true
}

func renderScalar(rv reflect.Value) (hint, text string, ok bool) {
	switch rv.Kind() {
	case reflect.String:
		return "", rv.String(), true
	case reflect.Bool:
		return HintBoolean, strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return HintLong, strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return HintLong, strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return HintDouble, formatFloat(rv.Float()), true
	default:
		return "", "", false
	}
}

func sliceHint(elem reflect.Type) string {
	hint, _, _ := renderScalar(reflect.Zero(elem))
	return hint
}
