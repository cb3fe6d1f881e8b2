// Package meta provides metadata descriptors: named, strongly typed property
// bags attached to classes and members, read and written by property path.
//
// A descriptor kind is a Go struct type. Its exported fields are the declared
// properties, in declaration order. Struct-typed fields are nested
// descriptors, slice fields are arrays. Field tags tune each property:
//
//	type DialogField struct {
//	    Label    string `meta:"label,attr=fieldLabel"`
//	    Ranking  int    `meta:"ranking,skip" default:"0"`
//	    Required bool
//	}
//
// A Descriptor is backed by a source struct value, an override map, or both;
// map entries shadow source values. Unset properties resolve to the declared
// default, or to a synthesized empty value of the property type, so reads
// never yield nil for value-typed properties.
//
// # Path Syntax
//
// Paths address properties the way the output tree addresses nodes:
//   - Simple property: "label"
//   - Nested descriptor: "panel/title"
//   - Array element: "tabs[1]/title"
//   - Qualified name: "DialogField.label"
//   - Reserved heads: "@source" and "@values"
package meta
