package common

import "path"

// UnknownStr is the String() value of enum members without a name.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// LastSegment returns the part of a slash-separated resource path after the last slash.
func LastSegment(p string) string {
	if p == "" {
		return ""
	}

	return path.Base(p)
}
