package target

import (
	"strings"

	"authoring-kit/internal/common"
)

// Special path segments.
const (
	SelfSegment   = "."
	ParentSegment = ".."
)

// SplitPath splits a slash separated node path. Text between single or
// double quotes is kept as one literal segment, slashes included, and the
// quotes are dropped. Empty segments are skipped.
func SplitPath(path string) []string {
	var (
		segments []string
		cur      strings.Builder
		quote    rune
		quoted   bool
	)

	flush := func() {
		if cur.Len() > 0 || quoted {
			segments = append(segments, cur.String())
		}

		cur.Reset()

		quoted = false
	}

	for _, r := range path {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			quoted = true
		case r == '/':
			flush()
		default:
			cur.WriteRune(r)
		}
	}

	flush()

	return segments
}

// Get resolves path relative to n. A leading slash starts at the root.
// It returns nil when any segment is missing.
func (n *Node) Get(path string) *Node {
	return n.resolve(path, false)
}

// GetOrCreate resolves path relative to n, creating missing segments.
func (n *Node) GetOrCreate(path string) *Node {
	return n.resolve(path, true)
}

// Create resolves all but the last segment like GetOrCreate and always
// creates the last one; an existing node of that name is detached first.
// Paths ending in "." or ".." resolve without creating.
func (n *Node) Create(path string) *Node {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return n
	}

	last := segments[len(segments)-1]
	if last == SelfSegment || last == ParentSegment {
		return n.resolve(path, true)
	}

	parent := walk(start(n, path), segments[:len(segments)-1], true)
	if parent == nil {
		return nil
	}

	last = common.SanitizeNodeName(last, DefaultChildName)
	if existing := parent.Child(last); existing != nil {
		existing.Detach()
	}

	return parent.CreateChild(last)
}

// RemoveTarget detaches the node at path and returns it, or nil when
// nothing resolves.
func (n *Node) RemoveTarget(path string) *Node {
	found := n.Get(path)
	if found == nil || found.parent == nil {
		return nil
	}

	found.Detach()

	return found
}

func start(n *Node, path string) *Node {
	if strings.HasPrefix(path, "/") {
		return n.Root()
	}

	return n
}

func (n *Node) resolve(path string, create bool) *Node {
	return walk(start(n, path), SplitPath(path), create)
}

func walk(from *Node, segments []string, create bool) *Node {
	cur := from

	for _, seg := range segments {
		switch seg {
		case SelfSegment:
			continue
		case ParentSegment:
			if cur.parent == nil {
				return nil
			}

			cur = cur.parent

			continue
		}

		seg = common.SanitizeNodeName(seg, DefaultChildName)

		next := cur.Child(seg)
		if next == nil {
			if !create {
				return nil
			}

			next = cur.CreateChild(seg)
		}

		cur = next
	}

	return cur
}
