package analyze

import (
	"fmt"
	"reflect"
	"strings"

	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/match"
	"authoring-kit/internal/meta"
)

const maxSuggestions = 3

// Descriptors turns parsed directives into map-backed descriptors. Unknown
// kinds, unknown properties and undecodable values are reported to the
// sink and left out; the remaining descriptors are still returned.
func (a *Analyzer) Descriptors(dirs []Directive, class, member string) []*meta.Descriptor {
	var out []*meta.Descriptor

	sink := diagnostic.SinkFunc(func(err error) {
		a.sink.Handle(fmt.Errorf("%s: %w", memberPath(class, member), err))
	})

	for _, dir := range dirs {
		k, ok := a.catalog.Lookup(dir.Kind)
		if !ok {
			a.sink.Handle(diagnostic.NewLayoutError(diagnostic.CodeInvalidDescriptor, class, member,
				"unknown descriptor kind %q%s", dir.Kind, didYouMean(dir.Kind, kindNames(a.catalog))))

			continue
		}

		values := make(map[string]any, len(dir.Args))

		for _, arg := range dir.Args {
			spec, ok := k.Property(arg.Name)
			if !ok {
				sink.Handle(&diagnostic.LookupError{
					Kind:        k.Name(),
					Property:    arg.Name,
					Suggestions: match.Suggest(arg.Name, k.PropertyNames(), maxSuggestions),
				})

				continue
			}

			v, err := a.decodeArg(spec, arg.Value)
			if err != nil {
				a.sink.Handle(diagnostic.NewLayoutError(diagnostic.CodeInvalidDescriptor, class, member,
					"%s.%s: %v", k.Name(), arg.Name, err))

				continue
			}

			values[arg.Name] = v
		}

		out = append(out, meta.FromMap(k, values, sink))
	}

	return out
}

// decodeArg converts argument text into a property value. Lists use "|"
// as separator; a list of nested descriptors takes one title per item.
func (a *Analyzer) decodeArg(spec *meta.PropertySpec, raw string) (any, error) {
	switch {
	case spec.ElemIsDescriptor():
		return a.titledItems(spec.Type.Elem(), raw)
	case spec.IsDescriptor():
		return nil, fmt.Errorf("nested %s cannot be set from text", spec.Type.Name())
	default:
		return meta.DecodeValue(spec.Type, raw)
	}
}

func (a *Analyzer) titledItems(t reflect.Type, raw string) ([]*meta.Descriptor, error) {
	k, err := a.catalog.KindOf(t)
	if err != nil {
		return nil, err
	}

	prop := titleProperty(k)
	if prop == "" {
		return nil, fmt.Errorf("%s has no text property to name items by", k.Name())
	}

	var out []*meta.Descriptor

	for _, item := range strings.Split(raw, "|") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		d := meta.Empty(k)
		if err := d.PutValue(prop, item); err != nil {
			return nil, err
		}

		out = append(out, d)
	}

	return out, nil
}

// titleProperty returns "title" when declared, else the first string
// property.
func titleProperty(k *meta.Kind) string {
	if p, ok := k.Property("title"); ok && p.Type.Kind() == reflect.String {
		return p.Name
	}

	for _, p := range k.Properties() {
		if p.Type.Kind() == reflect.String {
			return p.Name
		}
	}

	return ""
}

func kindNames(c *meta.Catalog) []string {
	ks := c.Kinds()

	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.Name()
	}

	return out
}

func didYouMean(name string, candidates []string) string {
	s := match.Suggest(name, candidates, 1)
	if len(s) == 0 {
		return ""
	}

	return fmt.Sprintf(" (did you mean %q?)", s[0])
}
