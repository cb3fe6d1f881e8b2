package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"authoring-kit/internal/diagnostic"
)

// DiagnosticOptions configures diagnostic printing.
type DiagnosticOptions struct {
	NoColor bool
	// MinSeverity hides diagnostics below it.
	MinSeverity diagnostic.DiagnosticSeverity
}

// FormatDiagnostic renders one diagnostic.
//
// Example output:
//
//	error [lookup] Broken: DialogField has no property "lable"
//	   did you mean: label?
func FormatDiagnostic(d diagnostic.Diagnostic, opts DiagnosticOptions) string {
	var headerColor *color.Color

	switch d.Severity {
	case diagnostic.DiagnosticError:
		headerColor = color.New(color.FgRed, color.Bold)
	case diagnostic.DiagnosticWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
	default:
		headerColor = color.New(color.FgCyan)
	}

	hintColor := color.New(color.Faint)

	if opts.NoColor {
		headerColor.DisableColor()
		hintColor.DisableColor()
	}

	var b strings.Builder

	headerColor.Fprintf(&b, "%s [%s]", d.Severity, d.Code)

	if where := location(d); where != "" {
		fmt.Fprintf(&b, " %s:", where)
	}

	fmt.Fprintf(&b, " %s\n", d.Message)

	if len(d.Suggestions) > 0 {
		hintColor.Fprintf(&b, "   did you mean: %s?\n", strings.Join(d.Suggestions, ", "))
	}

	return b.String()
}

func location(d diagnostic.Diagnostic) string {
	switch {
	case d.Class != "" && d.Member != "":
		return d.Class + "#" + d.Member
	default:
		return d.Class
	}
}

// PrintDiagnostics writes every diagnostic at or above the minimum
// severity, errors first, and a summary line. It returns the number
// printed.
func PrintDiagnostics(w io.Writer, diags *diagnostic.Diagnostics, opts DiagnosticOptions) int {
	printed := 0

	for _, d := range diags.All() {
		if d.Severity < opts.MinSeverity {
			continue
		}

		fmt.Fprint(w, FormatDiagnostic(d, opts))

		printed++
	}

	if printed > 0 {
		summary := color.New(color.Bold)
		if opts.NoColor {
			summary.DisableColor()
		}

		summary.Fprintf(w, "%d error(s), %d warning(s)\n", len(diags.Errors), len(diags.Warnings))
	}

	return printed
}
