package diagnostic

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"authoring-kit/internal/common"
)

// Sink receives problems found during compilation. Implementations must not
// stop the caller; the compiler always continues after Handle returns.
type Sink interface {
	Handle(err error)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(err error)

// Handle calls f(err).
func (f SinkFunc) Handle(err error) { f(err) }

// Discard is a Sink that drops everything.
var Discard Sink = SinkFunc(func(error) {})

// Diagnostics holds all diagnostic information from a compilation run.
// It is safe for concurrent use.
type Diagnostics struct {
	mu       sync.Mutex
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Class identifies which class this relates to (if any).
	Class string
	// Member identifies which member this relates to (if any).
	Member string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
	// Err is the original error, kept for errors.Is/As.
	Err error
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Handle classifies err and records it. Nil errors are ignored.
func (d *Diagnostics) Handle(err error) {
	if err == nil {
		return
	}

	d.add(FromError(err))
}

// FromError converts an error into a Diagnostic, picking code and severity
// from the typed errors of this package.
func FromError(err error) Diagnostic {
	diag := Diagnostic{
		Severity: DiagnosticError,
		Code:     "error",
		Message:  err.Error(),
		Err:      err,
	}

	var (
		lookupErr   *LookupError
		mismatchErr *TypeMismatchError
		boundsErr   *BoundsError
		layoutErr   *LayoutError
	)

	switch {
	case errors.As(err, &lookupErr):
		diag.Code = "lookup"
		diag.Class = lookupErr.Kind
		diag.Suggestions = lookupErr.Suggestions
	case errors.As(err, &mismatchErr):
		diag.Code = "type_mismatch"
		diag.Class = mismatchErr.Kind
	case errors.As(err, &boundsErr):
		diag.Code = "bounds"
		diag.Class = boundsErr.Kind
	case errors.As(err, &layoutErr):
		diag.Code = layoutErr.Code
		diag.Class = layoutErr.Class
		diag.Member = layoutErr.Member
		diag.Message = layoutErr.Message

		if layoutErr.Warning {
			diag.Severity = DiagnosticWarning
		}
	}

	return diag
}

func (d *Diagnostics) add(diag Diagnostic) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, class, member string) {
	d.add(Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  message,
		Class:    class,
		Member:   member,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, class, member string) {
	d.add(Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Class:    class,
		Member:   member,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, class, member string) {
	d.add(Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Class:    class,
		Member:   member,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) > 0
}

// Count returns the number of recorded diagnostics of every severity.
func (d *Diagnostics) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()

	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// WithCode returns the diagnostics carrying the given code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other *Diagnostics) {
	for _, diag := range other.All() {
		d.add(diag)
	}
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Class != "" {
		prefix = append(prefix, "["+d.Class+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
