package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched with errors.Is.
var (
	ErrLookup       = errors.New("property lookup failed")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrBounds       = errors.New("index out of bounds")
	ErrLayout       = errors.New("layout error")
)

// Layout error codes.
const (
	CodeRecursion             = "recursion"
	CodeMissingSection        = "missing_section"
	CodeAmbiguousOrder        = "ambiguous_order"
	CodeResourceTypeCollision = "resource_type_collision"
	CodeHandlerPanic          = "handler_panic"
	CodeOrderingCycle         = "ordering_cycle"
	CodeInvalidDescriptor     = "invalid_descriptor"
	CodeCycle                 = "tree_cycle"
)

// LookupError reports a path element that names no declared property.
type LookupError struct {
	Kind        string
	Property    string
	Suggestions []string
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("%s has no property %q", e.Kind, e.Property)
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, ", ") + "?"
	}

	return msg
}

// Unwrap makes LookupError match ErrLookup.
func (e *LookupError) Unwrap() error { return ErrLookup }

// TypeMismatchError reports a write whose value is not assignable to the
// declared property type.
type TypeMismatchError struct {
	Kind     string
	Property string
	Want     string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s.%s: cannot assign %s to %s", e.Kind, e.Property, e.Got, e.Want)
}

// Unwrap makes TypeMismatchError match ErrTypeMismatch.
func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// BoundsError reports an array index outside the readable range or beyond
// the one-slot expansion allowed on write.
type BoundsError struct {
	Kind     string
	Property string
	Index    int
	Len      int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s.%s: index %d out of bounds (len %d)", e.Kind, e.Property, e.Index, e.Len)
}

// Unwrap makes BoundsError match ErrBounds.
func (e *BoundsError) Unwrap() error { return ErrBounds }

// LayoutError reports a structural problem found while building the tree.
// Warning marks problems that leave a usable layout behind.
type LayoutError struct {
	Code    string
	Class   string
	Member  string
	Message string
	Warning bool
}

func (e *LayoutError) Error() string {
	var b strings.Builder

	if e.Class != "" {
		b.WriteString(e.Class)

		if e.Member != "" {
			b.WriteString("#" + e.Member)
		}

		b.WriteString(": ")
	}

	b.WriteString(e.Message)

	return b.String()
}

// Unwrap makes LayoutError match ErrLayout.
func (e *LayoutError) Unwrap() error { return ErrLayout }

// NewLayoutError builds an error-severity LayoutError.
func NewLayoutError(code, class, member, format string, args ...any) *LayoutError {
	return &LayoutError{
		Code:    code,
		Class:   class,
		Member:  member,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewLayoutWarning builds a warning-severity LayoutError.
func NewLayoutWarning(code, class, member, format string, args ...any) *LayoutError {
	e := NewLayoutError(code, class, member, format, args...)
	e.Warning = true

	return e
}
