package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// IsMultiple returns true if the slice has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Last returns the last element of the slice and true, or the zero value and false if empty.
func Last[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[len(s)-1], true
}

// GroupBy splits s into groups sharing the same key. Groups and their members
// keep the order of first appearance.
func GroupBy[S ~[]E, E any, K comparable](s S, key func(E) K) ([]K, map[K][]E) {
	var keys []K

	groups := make(map[K][]E)

	for _, e := range s {
		k := key(e)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}

		groups[k] = append(groups[k], e)
	}

	return keys, groups
}
