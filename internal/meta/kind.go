package meta

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"authoring-kit/internal/common"
)

// TypeRef is the type of type-valued properties: it names another type.
type TypeRef string

// NoSelection is the synthesized value of an unset TypeRef property.
const NoSelection TypeRef = "_Default"

// Tag keys read from descriptor kind fields.
const (
	TagMeta    = "meta"
	TagDefault = "default"
)

var (
	typeRefType    = reflect.TypeOf(TypeRef(""))
	timeType       = reflect.TypeOf(time.Time{})
	descriptorType = reflect.TypeOf((*Descriptor)(nil))
)

// PropertySpec describes one declared property of a descriptor kind.
type PropertySpec struct {
	// Name is the property name used in paths.
	Name string
	// Field is the Go struct field backing the property.
	Field string
	// Type is the declared Go type.
	Type reflect.Type
	// Default is the declared default, valid when HasDefault is set.
	Default    any
	HasDefault bool
	// Attr is the attribute name used when the property is written to a node.
	Attr string
	// Node is a relative node path the attribute is written under.
	Node string
	// Skip excludes the property from bulk population.
	Skip bool
	// ListMerge asks for list-aware merging when populated.
	ListMerge bool

	index   []int
	catalog *Catalog
}

// IsArray reports whether the property is array-typed.
func (p *PropertySpec) IsArray() bool {
	return p.Type.Kind() == reflect.Slice
}

// ElemType returns the array element type, or the property type for non-arrays.
func (p *PropertySpec) ElemType() reflect.Type {
	if p.IsArray() {
		return p.Type.Elem()
	}

	return p.Type
}

// IsDescriptor reports whether the property holds a nested descriptor.
func (p *PropertySpec) IsDescriptor() bool {
	return isDescriptorType(p.Type)
}

// ElemIsDescriptor reports whether array elements are nested descriptors.
func (p *PropertySpec) ElemIsDescriptor() bool {
	return p.IsArray() && isDescriptorType(p.Type.Elem())
}

// DefaultValue returns the declared default, or a synthesized one.
func (p *PropertySpec) DefaultValue() any {
	if p.HasDefault {
		return cloneValue(p.Default)
	}

	return p.catalog.Synthesize(p.Type)
}

// Kind is a descriptor kind: a named type with a fixed set of declared properties.
type Kind struct {
	name    string
	typ     reflect.Type
	props   []*PropertySpec
	byName  map[string]*PropertySpec
	catalog *Catalog
}

// Name returns the kind name.
func (k *Kind) Name() string { return k.name }

// Type returns the Go struct type of the kind.
func (k *Kind) Type() reflect.Type { return k.typ }

// Properties returns the declared properties in declaration order.
func (k *Kind) Properties() []*PropertySpec { return k.props }

// Property returns the declared property with the given name.
func (k *Kind) Property(name string) (*PropertySpec, bool) {
	p, ok := k.byName[name]
	return p, ok
}

// PropertyNames returns the declared property names in declaration order.
func (k *Kind) PropertyNames() []string {
	names := make([]string, len(k.props))
	for i, p := range k.props {
		names[i] = p.Name
	}

	return names
}

// String returns the kind name.
func (k *Kind) String() string { return k.name }

func isDescriptorType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t != timeType
}

// Catalog builds and caches kind tables by reflecting over struct types once.
// Named registration lets discovery code look kinds up by name.
type Catalog struct {
	cache *lru.Cache[reflect.Type, *Kind]

	mu     sync.RWMutex
	byName map[string]*Kind
	names  []string
}

// DefaultCacheSize bounds the number of reflected kind tables kept.
const DefaultCacheSize = 512

// NewCatalog creates a catalog caching up to size kind tables.
func NewCatalog(size int) *Catalog {
	if size <= 0 {
		size = DefaultCacheSize
	}

	cache, err := lru.New[reflect.Type, *Kind](size)
	if err != nil {
		panic(fmt.Sprintf("meta: creating kind cache: %v", err))
	}

	return &Catalog{
		cache:  cache,
		byName: make(map[string]*Kind),
	}
}

var defaultCatalog = NewCatalog(DefaultCacheSize)

// DefaultCatalog returns the process-wide catalog.
func DefaultCatalog() *Catalog { return defaultCatalog }

// KindOf returns the kind for a struct type (or pointer to struct).
func (c *Catalog) KindOf(t reflect.Type) (*Kind, error) {
	if t == nil {
		return nil, fmt.Errorf("meta: nil kind type")
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if !isDescriptorType(t) {
		return nil, fmt.Errorf("meta: %s is not a struct type", t)
	}

	c.mu.RLock()
	if k, ok := c.byName[t.Name()]; ok && k.typ == t {
		c.mu.RUnlock()
		return k, nil
	}
	c.mu.RUnlock()

	if k, ok := c.cache.Get(t); ok {
		return k, nil
	}

	k, err := c.buildKind(t)
	if err != nil {
		return nil, err
	}

	c.cache.Add(t, k)

	return k, nil
}

// MustKindOf is KindOf that panics on non-struct types. Meant for package
// level kind variables.
func (c *Catalog) MustKindOf(t reflect.Type) *Kind {
	k, err := c.KindOf(t)
	if err != nil {
		panic(err)
	}

	return k
}

// Register makes the kinds of the given sample values discoverable by name.
// Registered kinds are pinned and never evicted.
func (c *Catalog) Register(samples ...any) error {
	for _, s := range samples {
		k, err := c.KindOf(reflect.TypeOf(s))
		if err != nil {
			return err
		}

		c.mu.Lock()
		if prev, ok := c.byName[k.name]; ok && prev.typ != k.typ {
			c.mu.Unlock()
			return fmt.Errorf("meta: kind name %q registered twice (%s and %s)", k.name, prev.typ, k.typ)
		}

		if _, ok := c.byName[k.name]; !ok {
			c.names = append(c.names, k.name)
		}

		c.byName[k.name] = k
		c.mu.Unlock()
	}

	return nil
}

// Lookup returns a registered kind by name.
func (c *Catalog) Lookup(name string) (*Kind, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	k, ok := c.byName[name]

	return k, ok
}

// Kinds returns the registered kinds in registration order.
func (c *Catalog) Kinds() []*Kind {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Kind, 0, len(c.names))
	for _, n := range c.names {
		out = append(out, c.byName[n])
	}

	return out
}

func (c *Catalog) buildKind(t reflect.Type) (*Kind, error) {
	k := &Kind{
		name:    t.Name(),
		typ:     t,
		byName:  make(map[string]*PropertySpec),
		catalog: c,
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		spec, ok := parseFieldTag(f)
		if !ok {
			continue
		}

		spec.catalog = c

		if raw, has := f.Tag.Lookup(TagDefault); has {
			def, err := DecodeValue(f.Type, raw)
			if err != nil {
				return nil, fmt.Errorf("meta: %s.%s: bad default %q: %w", t.Name(), f.Name, raw, err)
			}

			spec.Default = def
			spec.HasDefault = true
		}

		if _, dup := k.byName[spec.Name]; dup {
			return nil, fmt.Errorf("meta: %s declares property %q twice", t.Name(), spec.Name)
		}

		k.props = append(k.props, spec)
		k.byName[spec.Name] = spec
	}

	return k, nil
}

// parseFieldTag reads `meta:"name,attr=x,node=y,skip,list"`. A name of "-"
// hides the field.
func parseFieldTag(f reflect.StructField) (*PropertySpec, bool) {
	spec := &PropertySpec{
		Name:  common.LowerFirst(f.Name),
		Field: f.Name,
		Type:  f.Type,
		index: f.Index,
	}

	tag, ok := f.Tag.Lookup(TagMeta)
	if !ok {
		spec.Attr = spec.Name
		return spec, true
	}

	parts := strings.Split(tag, ",")
	if parts[0] == "-" {
		return nil, false
	}

	if parts[0] != "" {
		spec.Name = parts[0]
	}

	for _, opt := range parts[1:] {
		key, value, _ := strings.Cut(strings.TrimSpace(opt), "=")

		switch key {
		case "attr":
			spec.Attr = value
		case "node":
			spec.Node = value
		case "skip":
			spec.Skip = true
		case "list":
			spec.ListMerge = true
		}
	}

	if spec.Attr == "" {
		spec.Attr = spec.Name
	}

	return spec, true
}
