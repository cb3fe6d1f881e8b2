// Package match provides fuzzy name matching used to suggest the intended
// property name when a descriptor lookup fails.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Similarity: normalized 0..1 score over normalized identifiers
//   - Suggest: ranks candidate names closest to a misspelled one
package match
