package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// getterPrefixes are stripped from method names so that a getter and its backing
// field share one identity.
var getterPrefixes = []string{"get", "is", "Get", "Is"}

// StripGetter returns the field-like name of a member: "getTitle", "GetTitle"
// and "IsShown" become "title", "title" and "shown"; other names are returned
// with the first letter lowered.
func StripGetter(name string) string {
	for _, p := range getterPrefixes {
		rest, ok := strings.CutPrefix(name, p)
		if !ok || rest == "" {
			continue
		}

		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsUpper(r) {
			return LowerFirst(rest)
		}
	}

	return LowerFirst(name)
}

// LowerFirst lowers the first rune of s.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToLower(r)) + s[size:]
}

// IsBlank reports whether s is empty or holds only white space.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// nodeNamePunct lists the non-alphanumeric characters allowed in node names.
const nodeNamePunct = ":_-."

// SanitizeNodeName reduces s to a name valid for the output tree: letters,
// digits and a few punctuation characters. Runs of invalid characters collapse
// into a single underscore. An empty result becomes fallback.
func SanitizeNodeName(s, fallback string) string {
	var b strings.Builder

	b.Grow(len(s))

	pendingSep := false

	for _, r := range strings.TrimSpace(s) {
		valid := r < utf8.RuneSelf &&
			(unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(nodeNamePunct, r))
		if !valid {
			pendingSep = b.Len() > 0

			continue
		}

		if pendingSep {
			b.WriteByte('_')

			pendingSep = false
		}

		b.WriteRune(r)
	}

	if b.Len() == 0 {
		return fallback
	}

	return b.String()
}
