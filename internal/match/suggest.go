package match

import (
	"sort"
	"strings"
	"unicode"
)

// DefaultMinSimilarity is the lowest score a candidate needs to be suggested.
const DefaultMinSimilarity = 0.5

// Normalize lower-cases s and drops separators, so "render_hidden",
// "renderHidden" and "Render-Hidden" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Suggest returns up to limit candidates that look like name, best first.
// Ties keep candidate order.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var ranked []scored

	for _, c := range candidates {
		if s := Similarity(name, c); s >= DefaultMinSimilarity {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}
