package target

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"authoring-kit/internal/common"
)

// Type hints prefixed to non-text attribute values.
const (
	HintBoolean = "{Boolean}"
	HintLong    = "{Long}"
	HintDouble  = "{Double}"
	HintDate    = "{Date}"
)

// DateLayout renders date attributes.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Merger combines the current value of an attribute with an incoming one.
type Merger func(current, incoming string) string

// DefaultMerger keeps the incoming value unless it is blank.
func DefaultMerger(current, incoming string) string {
	if common.IsBlank(incoming) {
		return current
	}

	return incoming
}

// ListMerger unions two delimited lists without duplicates, current items
// first. Values that do not both look like lists merge with DefaultMerger.
func ListMerger(current, incoming string) string {
	curHint, curItems, curOK := parseList(current)
	inHint, inItems, inOK := parseList(incoming)

	if !curOK || !inOK || curHint != inHint {
		return DefaultMerger(current, incoming)
	}

	merged := append([]string(nil), curItems...)
	for _, item := range inItems {
		if !slices.Contains(merged, item) {
			merged = append(merged, item)
		}
	}

	if strings.HasPrefix(strings.TrimPrefix(incoming, inHint), "[") {
		return inHint + "[" + strings.Join(merged, ",") + "]"
	}

	return inHint + strings.Join(merged, ",")
}

// parseList splits "[a,b]", "{Long}[1,2]" or "a,b" into items.
func parseList(s string) (hint string, items []string, ok bool) {
	body := s
	if strings.HasPrefix(body, "{") {
		if end := strings.IndexByte(body, '}'); end > 0 {
			hint, body = body[:end+1], body[end+1:]
		}
	}

	switch {
	case strings.HasPrefix(body, "[") && strings.HasSuffix(body, "]"):
		body = body[1 : len(body)-1]
	case strings.Contains(body, ","):
	default:
		return "", nil, false
	}

	for _, item := range strings.Split(body, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return hint, items, true
}

// Attribute returns the value of an attribute.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attr returns the value of an attribute or "".
func (n *Node) Attr(name string) string {
	return n.attrs[name]
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// AttributeNames returns attribute names in insertion order, the kind
// marker first.
func (n *Node) AttributeNames() []string {
	return append([]string(nil), n.attrOrder...)
}

// Attributes returns a copy of the attribute map.
func (n *Node) Attributes() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}

	return out
}

// RemoveAttribute deletes an attribute. The kind marker cannot be removed.
func (n *Node) RemoveAttribute(name string) {
	if name == KindAttr {
		return
	}

	if _, ok := n.attrs[name]; !ok {
		return
	}

	delete(n.attrs, name)
	n.attrOrder = slices.DeleteFunc(n.attrOrder, func(k string) bool { return k == name })
}

// SetAttributeWith writes value through merger. A blank result is not
// stored for an attribute that is not present yet.
func (n *Node) SetAttributeWith(name, value string, merger Merger) *Node {
	if merger == nil {
		merger = DefaultMerger
	}

	current, had := n.attrs[name]
	if had {
		value = merger(current, value)
	} else if value == "" {
		return n
	}

	if !had {
		n.attrOrder = append(n.attrOrder, name)
	}

	n.attrs[name] = value

	return n
}

// SetAttribute writes value with DefaultMerger.
func (n *Node) SetAttribute(name, value string) *Node {
	return n.SetAttributeWith(name, value, DefaultMerger)
}

// SetString is SetAttribute.
func (n *Node) SetString(name, value string) *Node {
	return n.SetAttribute(name, value)
}

// SetStrings writes "[a,b]"; an empty slice is not written.
func (n *Node) SetStrings(name string, values []string) *Node {
	if len(values) == 0 {
		return n
	}

	return n.SetAttributeWith(name, "["+strings.Join(values, ",")+"]", ListMerger)
}

// SetBool writes "{Boolean}true" or "{Boolean}false".
func (n *Node) SetBool(name string, value bool) *Node {
	return n.SetAttribute(name, HintBoolean+strconv.FormatBool(value))
}

// SetInt writes "{Long}n".
func (n *Node) SetInt(name string, value int64) *Node {
	return n.SetAttribute(name, HintLong+strconv.FormatInt(value, 10))
}

// SetInts writes "{Long}[a,b]".
func (n *Node) SetInts(name string, values []int64) *Node {
	if len(values) == 0 {
		return n
	}

	items := make([]string, len(values))
	for i, v := range values {
		items[i] = strconv.FormatInt(v, 10)
	}

	return n.SetAttributeWith(name, HintLong+"["+strings.Join(items, ",")+"]", ListMerger)
}

// SetFloat writes "{Double}f".
func (n *Node) SetFloat(name string, value float64) *Node {
	return n.SetAttribute(name, HintDouble+formatFloat(value))
}

// SetFloats writes "{Double}[a,b]".
func (n *Node) SetFloats(name string, values []float64) *Node {
	if len(values) == 0 {
		return n
	}

	items := make([]string, len(values))
	for i, v := range values {
		items[i] = formatFloat(v)
	}

	return n.SetAttributeWith(name, HintDouble+"["+strings.Join(items, ",")+"]", ListMerger)
}

// SetTime writes "{Date}" followed by the time in DateLayout.
func (n *Node) SetTime(name string, value time.Time) *Node {
	return n.SetAttribute(name, HintDate+value.Format(DateLayout))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
