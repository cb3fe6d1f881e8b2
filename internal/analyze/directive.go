package analyze

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultTagKey is the struct tag key and comment directive prefix read by
// the analyzer.
const DefaultTagKey = "authorkit"

// ValueArg is the argument name a bare single argument is stored under.
const ValueArg = "value"

// Directive is one parsed descriptor declaration: Kind(k=v,k2=a|b).
type Directive struct {
	Kind string
	// Args holds raw argument text in declaration order.
	Args []Arg
}

// Arg is one key=value argument of a directive.
type Arg struct {
	Name  string
	Value string
}

// ParseDirectives parses a semicolon separated list of declarations, as
// found in struct tags: "DialogField(label=Title,ranking=2);TextField".
// Single quotes protect separators inside values.
func ParseDirectives(text string) ([]Directive, error) {
	var out []Directive

	for _, part := range splitTop(text, ';') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		d, err := parseDirective(part)
		if err != nil {
			return out, err
		}

		out = append(out, d)
	}

	return out, nil
}

// CommentDirectives returns the declarations found in comment lines of the
// form "//<key>:Kind(...)".
func CommentDirectives(key string, lines []string) ([]Directive, error) {
	prefix := "//" + key + ":"

	var out []Directive

	for _, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), prefix)
		if !ok {
			continue
		}

		ds, err := ParseDirectives(rest)
		out = append(out, ds...)

		if err != nil {
			return out, err
		}
	}

	return out, nil
}

func parseDirective(text string) (Directive, error) {
	name, rest, hasArgs := strings.Cut(text, "(")
	name = strings.TrimSpace(name)

	if !isIdent(name) {
		return Directive{}, fmt.Errorf("invalid kind name %q in %q", name, text)
	}

	d := Directive{Kind: name}
	if !hasArgs {
		return d, nil
	}

	body, ok := strings.CutSuffix(strings.TrimSpace(rest), ")")
	if !ok {
		return d, fmt.Errorf("unterminated argument list in %q", text)
	}

	args := splitTop(body, ',')
	for _, raw := range args {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		key, value, isPair := strings.Cut(raw, "=")
		if !isPair || !isIdent(strings.TrimSpace(key)) {
			if len(args) > 1 {
				return d, fmt.Errorf("argument %q of %s needs a name", raw, name)
			}

			d.Args = append(d.Args, Arg{Name: ValueArg, Value: unquote(raw)})

			continue
		}

		d.Args = append(d.Args, Arg{Name: strings.TrimSpace(key), Value: unquote(strings.TrimSpace(value))})
	}

	return d, nil
}

// splitTop splits s at sep outside single quotes and parentheses.
func splitTop(s string, sep rune) []string {
	var (
		parts  []string
		depth  int
		quoted bool
		start  int
	)

	for i, r := range s {
		switch {
		case r == '\'':
			quoted = !quoted
		case quoted:
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	return append(parts, s[start:])
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}

	return s
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}

	return true
}
