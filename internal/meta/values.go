package meta

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// TimeLayout is the layout accepted when decoding time-typed properties.
const TimeLayout = time.RFC3339

// DecodeValue converts the string form of a value (struct tag defaults,
// directive arguments) into t. Slices take comma or pipe separated items.
func DecodeValue(t reflect.Type, raw string) (any, error) {
	var input any = raw

	if t.Kind() == reflect.Slice {
		if strings.TrimSpace(raw) == "" {
			return reflect.MakeSlice(t, 0, 0).Interface(), nil
		}

		parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '|' })
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		input = parts
	}

	return Decode(t, input)
}

// Decode weakly converts input into a value of type t: "5" becomes 5 for
// integer types, "true" a bool, a []string a []int and a map a struct.
func Decode(t reflect.Type, input any) (any, error) {
	out := reflect.New(t)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          TagMeta,
		DecodeHook:       mapstructure.StringToTimeHookFunc(TimeLayout),
		Result:           out.Interface(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder for %s: %w", t, err)
	}

	if err := dec.Decode(input); err != nil {
		return nil, fmt.Errorf("decoding %v into %s: %w", input, t, err)
	}

	return out.Elem().Interface(), nil
}

// Synthesize returns the empty value of t: "" for text, zero or false for
// scalars, a zero-length slice for arrays, an empty descriptor for
// descriptor types and NoSelection for TypeRef. Reference types yield nil.
func (c *Catalog) Synthesize(t reflect.Type) any {
	switch {
	case t == typeRefType:
		return NoSelection
	case isDescriptorType(t):
		return Empty(c.MustKindOf(t))
	case t.Kind() == reflect.Slice && isDescriptorType(t.Elem()):
		return []*Descriptor{}
	}

	switch t.Kind() {
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0).Interface()
	case reflect.Map:
		return reflect.MakeMap(t).Interface()
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil
	default:
		return reflect.Zero(t).Interface()
	}
}

// normalize converts a raw source field value into the form descriptors hand
// out: nested structs become *Descriptor, struct slices []*Descriptor, nil
// slices empty slices.
func (c *Catalog) normalize(t reflect.Type, rv reflect.Value) any {
	switch {
	case isDescriptorType(t):
		return New(c.MustKindOf(t), rv.Interface())
	case t.Kind() == reflect.Slice && isDescriptorType(t.Elem()):
		k := c.MustKindOf(t.Elem())

		out := make([]*Descriptor, rv.Len())
		for i := range out {
			out[i] = New(k, rv.Index(i).Interface())
		}

		return out
	case t.Kind() == reflect.Slice && rv.IsNil():
		return reflect.MakeSlice(t, 0, 0).Interface()
	default:
		return rv.Interface()
	}
}

// coerce checks that v may be stored in a property of type t and returns it
// in normalized form. Values are accepted when assignable to t, or when they
// share t's basic kind and convert to it (a string into a named string type).
func (c *Catalog) coerce(t reflect.Type, v any) (any, bool) {
	switch {
	case isDescriptorType(t):
		return c.coerceDescriptor(t, v)
	case t.Kind() == reflect.Slice && isDescriptorType(t.Elem()):
		return c.coerceDescriptorSlice(t, v)
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}

	if rv.Type().AssignableTo(t) || (rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t)) {
		return cloneValue(rv.Convert(t).Interface()), true
	}

	return nil, false
}

func (c *Catalog) coerceDescriptor(t reflect.Type, v any) (any, bool) {
	if d, ok := v.(*Descriptor); ok {
		if d == nil || d.kind.typ != t {
			return nil, false
		}

		return d.Clone(), true
	}

	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}

	if !rv.IsValid() || rv.Type() != t {
		return nil, false
	}

	return New(c.MustKindOf(t), rv.Interface()), true
}

func (c *Catalog) coerceDescriptorSlice(t reflect.Type, v any) (any, bool) {
	if ds, ok := v.([]*Descriptor); ok {
		out := make([]*Descriptor, len(ds))
		for i, d := range ds {
			if d == nil || d.kind.typ != t.Elem() {
				return nil, false
			}

			out[i] = d.Clone()
		}

		return out, true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Type() != t {
		return nil, false
	}

	return c.normalize(t, rv), true
}

func cloneValue(v any) any {
	if ds, ok := v.([]*Descriptor); ok {
		return append([]*Descriptor{}, ds...)
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice || rv.IsNil() {
		return v
	}

	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(out, rv)

	return out.Interface()
}

// IsEmptyValue applies the emptiness rule shared by descriptors and
// population: nil, zero scalars, "", zero-length arrays, NoSelection and
// empty descriptors are empty.
func IsEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *Descriptor:
		return x == nil || x.IsEmpty()
	case []*Descriptor:
		return len(x) == 0
	case TypeRef:
		return x == "" || x == NoSelection
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}

// ValuesEqual compares two property values; descriptors compare with Equal.
func ValuesEqual(a, b any) bool {
	switch x := a.(type) {
	case *Descriptor:
		y, ok := b.(*Descriptor)
		return ok && x.Equal(y)
	case []*Descriptor:
		y, ok := b.([]*Descriptor)
		if !ok || len(x) != len(y) {
			return false
		}

		for i := range x {
			if !x[i].Equal(y[i]) {
				return false
			}
		}

		return true
	}

	return reflect.DeepEqual(a, b)
}
