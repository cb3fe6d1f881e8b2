package meta

import (
	"strconv"
	"strings"
)

// Path delimiters.
const (
	DelimNone  byte = 0
	DelimSlash byte = '/'
	DelimDot   byte = '.'
)

// callMarker is the empty-call suffix tolerated after a property name.
const callMarker = "()"

// PathElement is one step of a PropertyPath.
type PathElement struct {
	Name string
	// Index is the array index, or -1 when the element carries none.
	Index int
}

// HasIndex reports whether the element addresses an array slot.
func (e PathElement) HasIndex() bool {
	return e.Index >= 0
}

// String renders the element back to path syntax.
func (e PathElement) String() string {
	if !e.HasIndex() {
		return e.Name
	}

	return e.Name + "[" + strconv.Itoa(e.Index) + "]"
}

// PropertyPath is an ordered queue of path elements.
type PropertyPath struct {
	Elements  []PathElement
	Delimiter byte
}

// ParsePath parses a property path. It never fails: content that does not
// split into named elements becomes a single element holding the whole string.
//
// "/" marks a hierarchical path descending into nested descriptors, "." a
// qualified name on one level. A trailing "[n]" sets the element index and a
// trailing "()" is dropped.
func ParsePath(path string) PropertyPath {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return PropertyPath{Elements: []PathElement{{Name: path, Index: -1}}}
	}

	delim := DelimNone

	switch {
	case strings.IndexByte(trimmed, DelimSlash) > 0:
		delim = DelimSlash
	case strings.IndexByte(trimmed, DelimDot) >= 0:
		delim = DelimDot
	}

	chunks := []string{trimmed}
	if delim != DelimNone {
		chunks = strings.Split(trimmed, string(delim))
	}

	elements := make([]PathElement, 0, len(chunks))

	for _, chunk := range chunks {
		if chunk == "" {
			continue
		}

		elements = append(elements, parseElement(chunk))
	}

	if len(elements) == 0 {
		return PropertyPath{Elements: []PathElement{{Name: path, Index: -1}}}
	}

	return PropertyPath{Elements: elements, Delimiter: delim}
}

func parseElement(chunk string) PathElement {
	name := chunk
	index := -1

	if strings.HasSuffix(name, "]") {
		if open := strings.LastIndexByte(name, '['); open > 0 {
			if n, err := strconv.Atoi(name[open+1 : len(name)-1]); err == nil && n >= 0 {
				name = name[:open]
				index = n
			}
		}
	}

	if stripped := strings.TrimSuffix(name, callMarker); stripped != "" {
		name = stripped
	}

	return PathElement{Name: name, Index: index}
}

// Len returns the number of elements.
func (p PropertyPath) Len() int {
	return len(p.Elements)
}

// Head returns the first element.
func (p PropertyPath) Head() (PathElement, bool) {
	if len(p.Elements) == 0 {
		return PathElement{Index: -1}, false
	}

	return p.Elements[0], true
}

// Tail returns the path without its first element.
func (p PropertyPath) Tail() PropertyPath {
	if len(p.Elements) <= 1 {
		return PropertyPath{Delimiter: p.Delimiter}
	}

	return PropertyPath{Elements: p.Elements[1:], Delimiter: p.Delimiter}
}

// Last returns the final element.
func (p PropertyPath) Last() (PathElement, bool) {
	if len(p.Elements) == 0 {
		return PathElement{Index: -1}, false
	}

	return p.Elements[len(p.Elements)-1], true
}

// IsHierarchical reports whether the path descends through nested descriptors.
func (p PropertyPath) IsHierarchical() bool {
	return p.Delimiter == DelimSlash
}

// IsQualified reports whether the path is a dotted name with a qualifier.
func (p PropertyPath) IsQualified() bool {
	return p.Delimiter == DelimDot && len(p.Elements) > 1
}

// String renders the path; the delimiter defaults to "/".
func (p PropertyPath) String() string {
	delim := string(DelimSlash)
	if p.Delimiter == DelimDot {
		delim = string(DelimDot)
	}

	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		parts[i] = e.String()
	}

	return strings.Join(parts, delim)
}
