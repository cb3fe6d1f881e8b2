package meta

import (
	"fmt"
	"maps"
	"reflect"
	"strconv"
	"strings"

	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/match"
)

// Reserved path heads returning the descriptor's backing data.
const (
	SourceField = "@source"
	ValuesField = "@values"
)

// maxSuggestions bounds the "did you mean" list of lookup errors.
const maxSuggestions = 3

// Descriptor is a read/write view over the declared properties of a kind.
// Values come from the override map first, then from the source struct,
// then from the declared default or a synthesized empty value.
type Descriptor struct {
	kind   *Kind
	source any
	values map[string]any
}

// New creates a descriptor of kind k backed by source. Source may be nil, a
// struct value of the kind's type, or a pointer to one.
func New(k *Kind, source any) *Descriptor {
	rv := reflect.ValueOf(source)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv = reflect.Value{}
			break
		}

		rv = rv.Elem()
	}

	d := &Descriptor{kind: k, values: make(map[string]any)}
	if rv.IsValid() && rv.Type() == k.typ {
		d.source = rv.Interface()
	}

	return d
}

// Empty creates a descriptor with neither source nor overrides.
func Empty(k *Kind) *Descriptor {
	return New(k, nil)
}

// Of creates a source-backed descriptor, resolving the kind from the value
// type through the default catalog.
func Of(source any) (*Descriptor, error) {
	k, err := defaultCatalog.KindOf(reflect.TypeOf(source))
	if err != nil {
		return nil, err
	}

	return New(k, source), nil
}

// MustOf is Of that panics on non-struct values.
func MustOf(source any) *Descriptor {
	d, err := Of(source)
	if err != nil {
		panic(err)
	}

	return d
}

// FromMap creates a map-backed descriptor. Every entry goes through PutValue;
// rejected entries are reported and left out.
func FromMap(k *Kind, values map[string]any, sink diagnostic.Sink) *Descriptor {
	d := Empty(k)

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	// Declaration order keeps reporting deterministic.
	order := make(map[string]int, len(k.props))
	for i, p := range k.props {
		order[p.Name] = i
	}

	sortByDeclaration(keys, order)

	for _, key := range keys {
		if err := d.PutValue(key, values[key]); err != nil && sink != nil {
			sink.Handle(err)
		}
	}

	return d
}

func sortByDeclaration(keys []string, order map[string]int) {
	rank := func(k string) int {
		if r, ok := order[k]; ok {
			return r
		}

		return len(order)
	}

	for i := 1; i < len(keys); i++ {
		for j := i; j > 0; j-- {
			a, b := keys[j-1], keys[j]
			if rank(a) < rank(b) || (rank(a) == rank(b) && a <= b) {
				break
			}

			keys[j-1], keys[j] = b, a
		}
	}
}

// Kind returns the descriptor kind.
func (d *Descriptor) Kind() *Kind { return d.kind }

// Source returns the backing source value, or nil.
func (d *Descriptor) Source() any { return d.source }

// Values returns a copy of the override map.
func (d *Descriptor) Values() map[string]any {
	return maps.Clone(d.values)
}

// IsSet reports whether the named property has an explicit value from the
// override map or the source.
func (d *Descriptor) IsSet(name string) bool {
	if _, ok := d.values[name]; ok {
		return true
	}

	_, ok := d.kind.byName[name]

	return ok && d.source != nil
}

// IsEmpty reports whether the descriptor carries no explicit data.
func (d *Descriptor) IsEmpty() bool {
	if len(d.values) > 0 {
		return false
	}

	return d.source == nil || reflect.ValueOf(d.source).IsZero()
}

// Property is the result of resolving a path.
type Property struct {
	// Path is the full path of the property relative to the root descriptor.
	Path string
	// Name is the declared property name.
	Name string
	// Index is the array index addressed, or -1.
	Index int
	// Spec is the declaration, nil for reserved heads and missing results.
	Spec *PropertySpec
	// Value is the resolved value.
	Value any
	// Missing marks a tolerated failed lookup or an out-of-range index.
	Missing bool
}

// IsEmpty applies IsEmptyValue to the property value.
func (p Property) IsEmpty() bool {
	return p.Missing || IsEmptyValue(p.Value)
}

// IsDefault reports whether the value equals the declared or synthesized
// default of the property.
func (p Property) IsDefault() bool {
	if p.Spec == nil || p.Index >= 0 {
		return false
	}

	return ValuesEqual(p.Value, p.Spec.DefaultValue())
}

// Type returns the static type of the value: the element type when an index
// was addressed.
func (p Property) Type() reflect.Type {
	if p.Spec == nil {
		return reflect.TypeOf(p.Value)
	}

	if p.Index >= 0 {
		return p.Spec.ElemType()
	}

	return p.Spec.Type
}

// GetProperty resolves path. A path element naming no declared property
// yields a *diagnostic.LookupError.
func (d *Descriptor) GetProperty(path string) (Property, error) {
	return d.resolve(ParsePath(path), "", false)
}

// LookupProperty resolves path, returning a Missing property instead of an
// error when nothing matches.
func (d *Descriptor) LookupProperty(path string) Property {
	p, _ := d.resolve(ParsePath(path), "", true)
	return p
}

// Get returns the value at path, or nil when it cannot be resolved.
func (d *Descriptor) Get(path string) any {
	p := d.LookupProperty(path)
	if p.Missing {
		return nil
	}

	return p.Value
}

// String returns the text at path; non-text values yield "".
func (d *Descriptor) String(path string) string {
	rv := reflect.ValueOf(d.Get(path))
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String()
	}

	return ""
}

// Int returns the integer at path, or 0.
func (d *Descriptor) Int(path string) int64 {
	rv := reflect.ValueOf(d.Get(path))
	if !rv.IsValid() {
		return 0
	}

	switch {
	case rv.CanInt():
		return rv.Int()
	case rv.CanUint():
		return int64(rv.Uint())
	case rv.CanFloat():
		return int64(rv.Float())
	}

	return 0
}

// Bool returns the boolean at path, or false.
func (d *Descriptor) Bool(path string) bool {
	rv := reflect.ValueOf(d.Get(path))
	return rv.IsValid() && rv.Kind() == reflect.Bool && rv.Bool()
}

// Strings returns the text array at path as plain strings.
func (d *Descriptor) Strings(path string) []string {
	rv := reflect.ValueOf(d.Get(path))
	if !rv.IsValid() || rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() != reflect.String {
		return nil
	}

	out := make([]string, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).String()
	}

	return out
}

// Descriptors returns the nested descriptor array at path.
func (d *Descriptor) Descriptors(path string) []*Descriptor {
	ds, _ := d.Get(path).([]*Descriptor)
	return ds
}

// Nested returns the nested descriptor at path, or nil.
func (d *Descriptor) Nested(path string) *Descriptor {
	nd, _ := d.Get(path).(*Descriptor)
	return nd
}

func (d *Descriptor) lookupError(name string) error {
	return &diagnostic.LookupError{
		Kind:        d.kind.name,
		Property:    name,
		Suggestions: match.Suggest(name, d.kind.PropertyNames(), maxSuggestions),
	}
}

// qualifiedProperty checks the qualifier of a dotted path against the kind
// name and returns the element naming the property.
func (d *Descriptor) qualifiedProperty(p PropertyPath) (PathElement, error) {
	last, _ := p.Last()

	qualifier := make([]string, 0, len(p.Elements)-1)
	for _, e := range p.Elements[:len(p.Elements)-1] {
		qualifier = append(qualifier, e.Name)
	}

	q := strings.ToLower(strings.Join(qualifier, "."))
	full := strings.ToLower(d.kind.typ.String())

	if q == strings.ToLower(d.kind.name) || q == full || strings.HasSuffix(full, "."+q) {
		return last, nil
	}

	return last, &diagnostic.LookupError{Kind: d.kind.name, Property: p.String()}
}

func (d *Descriptor) resolve(p PropertyPath, prefix string, tolerant bool) (Property, error) {
	if p.IsQualified() {
		last, err := d.qualifiedProperty(p)
		if err != nil {
			return d.miss(prefix+p.String(), tolerant, err)
		}

		p = PropertyPath{Elements: []PathElement{last}}
	}

	head, ok := p.Head()
	if !ok {
		return d.miss(prefix, tolerant, d.lookupError(""))
	}

	switch head.Name {
	case SourceField:
		return Property{Path: prefix + head.Name, Name: head.Name, Index: -1, Value: d.source}, nil
	case ValuesField:
		return Property{Path: prefix + head.Name, Name: head.Name, Index: -1, Value: d.Values()}, nil
	}

	spec, ok := d.kind.byName[head.Name]
	if !ok {
		return d.miss(prefix+head.String(), tolerant, d.lookupError(head.Name))
	}

	prop := Property{
		Path:  prefix + spec.Name,
		Name:  spec.Name,
		Index: -1,
		Spec:  spec,
		Value: d.valueOf(spec),
	}

	if head.HasIndex() && spec.IsArray() {
		rv := reflect.ValueOf(prop.Value)

		prop.Path += "[" + strconv.Itoa(head.Index) + "]"
		prop.Index = head.Index

		if head.Index >= rv.Len() {
			prop.Value = nil
			prop.Missing = true
		} else {
			prop.Value = rv.Index(head.Index).Interface()
		}
	}

	rest := p.Tail()
	if rest.Len() == 0 || prop.Missing {
		return prop, nil
	}

	nested, ok := prop.Value.(*Descriptor)
	if !ok {
		next, _ := rest.Head()
		return d.miss(prop.Path+"/"+next.Name, tolerant, &diagnostic.LookupError{
			Kind:     d.kind.name,
			Property: prop.Path + "/" + next.Name,
		})
	}

	return nested.resolve(rest, prop.Path+"/", tolerant)
}

func (d *Descriptor) miss(path string, tolerant bool, err error) (Property, error) {
	prop := Property{Path: path, Index: -1, Missing: true}
	if tolerant {
		return prop, nil
	}

	return prop, err
}

// valueOf returns the effective value of a declared property.
func (d *Descriptor) valueOf(spec *PropertySpec) any {
	if v, ok := d.values[spec.Name]; ok {
		return v
	}

	if d.source != nil {
		rv := reflect.ValueOf(d.source).FieldByIndex(spec.index)
		return d.kind.catalog.normalize(spec.Type, rv)
	}

	return spec.DefaultValue()
}

// PutValue writes value at path. Nested descriptors along the path are
// materialized into the override map as needed; defaults are never stored.
// An array element may be written at an existing index or at the current
// length, which grows the array by one. A nil value unsets the property.
// Rejected writes leave the descriptor unchanged.
func (d *Descriptor) PutValue(path string, value any) error {
	return d.put(ParsePath(path), value)
}

// UnsetValue removes the explicit value at path.
func (d *Descriptor) UnsetValue(path string) error {
	return d.PutValue(path, nil)
}

func (d *Descriptor) put(p PropertyPath, value any) error {
	if p.IsQualified() {
		last, err := d.qualifiedProperty(p)
		if err != nil {
			return err
		}

		p = PropertyPath{Elements: []PathElement{last}}
	}

	head, ok := p.Head()
	if !ok {
		return d.lookupError("")
	}

	spec, ok := d.kind.byName[head.Name]
	if !ok {
		return d.lookupError(head.Name)
	}

	if rest := p.Tail(); rest.Len() > 0 {
		nested, commit, err := d.materialize(spec, head)
		if err != nil {
			return err
		}

		if err := nested.put(rest, value); err != nil {
			return err
		}

		commit()

		return nil
	}

	if head.HasIndex() && spec.IsArray() {
		return d.putIndexed(spec, head.Index, value)
	}

	if value == nil {
		delete(d.values, spec.Name)
		return nil
	}

	v, ok := d.kind.catalog.coerce(spec.Type, value)
	if !ok {
		return d.mismatch(spec, spec.Type, value)
	}

	d.values[spec.Name] = v

	return nil
}

func (d *Descriptor) mismatch(spec *PropertySpec, want reflect.Type, value any) error {
	got := "nil"
	if value != nil {
		got = reflect.TypeOf(value).String()
	}

	return &diagnostic.TypeMismatchError{
		Kind:     d.kind.name,
		Property: spec.Name,
		Want:     want.String(),
		Got:      got,
	}
}

// materialize returns the nested descriptor addressed by head together with
// a commit func storing it in the override map. Nothing is stored until
// commit runs, so a rejected write through the nested descriptor leaves d
// unchanged.
func (d *Descriptor) materialize(spec *PropertySpec, head PathElement) (*Descriptor, func(), error) {
	if !head.HasIndex() || !spec.IsArray() {
		if !spec.IsDescriptor() {
			return nil, nil, &diagnostic.LookupError{Kind: d.kind.name, Property: spec.Name + "/"}
		}

		if nested, ok := d.values[spec.Name].(*Descriptor); ok {
			return nested, func() {}, nil
		}

		nested := Empty(d.kind.catalog.MustKindOf(spec.Type))
		if src, ok := d.valueOf(spec).(*Descriptor); ok {
			nested.source = src.source
		}

		return nested, func() { d.values[spec.Name] = nested }, nil
	}

	if !spec.ElemIsDescriptor() {
		return nil, nil, &diagnostic.LookupError{Kind: d.kind.name, Property: head.String() + "/"}
	}

	current, _ := d.valueOf(spec).([]*Descriptor)
	if head.Index > len(current) {
		return nil, nil, &diagnostic.BoundsError{Kind: d.kind.name, Property: spec.Name, Index: head.Index, Len: len(current)}
	}

	arr := append([]*Descriptor{}, current...)
	if head.Index == len(arr) {
		arr = append(arr, Empty(d.kind.catalog.MustKindOf(spec.Type.Elem())))
	} else if _, held := d.values[spec.Name]; !held {
		arr[head.Index] = arr[head.Index].Clone()
	}

	return arr[head.Index], func() { d.values[spec.Name] = arr }, nil
}

func (d *Descriptor) putIndexed(spec *PropertySpec, index int, value any) error {
	current := reflect.ValueOf(d.valueOf(spec))
	n := current.Len()

	if index > n {
		return &diagnostic.BoundsError{Kind: d.kind.name, Property: spec.Name, Index: index, Len: n}
	}

	arrType := current.Type()

	if value == nil {
		if index == n {
			return nil
		}

		out := reflect.MakeSlice(arrType, 0, n-1)
		out = reflect.AppendSlice(out, current.Slice(0, index))
		out = reflect.AppendSlice(out, current.Slice(index+1, n))
		d.values[spec.Name] = out.Interface()

		return nil
	}

	elem, ok := d.kind.catalog.coerce(spec.Type.Elem(), value)
	if !ok {
		return d.mismatch(spec, spec.Type.Elem(), value)
	}

	out := reflect.MakeSlice(arrType, max(n, index+1), max(n, index+1))
	reflect.Copy(out, current)
	out.Index(index).Set(reflect.ValueOf(elem))
	d.values[spec.Name] = out.Interface()

	return nil
}

// Iterate lists the declared properties in declaration order. With deep set,
// nested descriptors are replaced by their own properties under a "name/"
// prefix. With expandArrays set, arrays yield one entry per element under an
// index-suffixed path, recursing into descriptor elements when deep is set.
func (d *Descriptor) Iterate(deep, expandArrays bool) []Property {
	var out []Property

	d.iterate("", deep, expandArrays, &out)

	return out
}

func (d *Descriptor) iterate(prefix string, deep, expandArrays bool, out *[]Property) {
	for _, spec := range d.kind.props {
		value := d.valueOf(spec)
		path := prefix + spec.Name

		switch {
		case expandArrays && spec.IsArray():
			rv := reflect.ValueOf(value)
			for i := range rv.Len() {
				elem := rv.Index(i).Interface()
				elemPath := path + "[" + strconv.Itoa(i) + "]"

				if nested, ok := elem.(*Descriptor); ok && deep {
					nested.iterate(elemPath+"/", deep, expandArrays, out)
					continue
				}

				*out = append(*out, Property{Path: elemPath, Name: spec.Name, Index: i, Spec: spec, Value: elem})
			}
		case deep && spec.IsDescriptor():
			value.(*Descriptor).iterate(path+"/", deep, expandArrays, out)
		default:
			*out = append(*out, Property{Path: path, Name: spec.Name, Index: -1, Spec: spec, Value: value})
		}
	}
}

// Equal reports whether both descriptors share kind, source and overrides.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}

	if d.kind.typ != other.kind.typ || !reflect.DeepEqual(d.source, other.source) {
		return false
	}

	if len(d.values) != len(other.values) {
		return false
	}

	for k, v := range d.values {
		ov, ok := other.values[k]
		if !ok || !ValuesEqual(v, ov) {
			return false
		}
	}

	return true
}

// Overlay copies the explicit values of other on top of d. Properties other
// leaves unset keep their current value. Kinds must match.
func (d *Descriptor) Overlay(other *Descriptor) error {
	if other == nil {
		return nil
	}

	if other.kind.typ != d.kind.typ {
		return fmt.Errorf("meta: cannot overlay %s onto %s", other.kind.name, d.kind.name)
	}

	for _, spec := range d.kind.props {
		if !other.IsSet(spec.Name) {
			continue
		}

		d.values[spec.Name] = deepClone(other.valueOf(spec))
	}

	return nil
}

// Clone returns a descriptor with the same source and a copied override map.
func (d *Descriptor) Clone() *Descriptor {
	c := &Descriptor{kind: d.kind, source: d.source, values: make(map[string]any, len(d.values))}
	for k, v := range d.values {
		c.values[k] = deepClone(v)
	}

	return c
}

func deepClone(v any) any {
	switch x := v.(type) {
	case *Descriptor:
		return x.Clone()
	case []*Descriptor:
		out := make([]*Descriptor, len(x))
		for i, nd := range x {
			out[i] = nd.Clone()
		}

		return out
	}

	return cloneValue(v)
}

// Map lists the effective values of all declared properties by name.
func (d *Descriptor) Map() map[string]any {
	out := make(map[string]any, len(d.kind.props))
	for _, spec := range d.kind.props {
		out[spec.Name] = d.valueOf(spec)
	}

	return out
}

// GoString renders the kind name and overrides for debugging.
func (d *Descriptor) GoString() string {
	return fmt.Sprintf("meta.Descriptor{kind: %s, source: %#v, values: %#v}", d.kind.name, d.source, d.values)
}
