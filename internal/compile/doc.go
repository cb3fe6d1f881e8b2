// Package compile turns classes into output trees, one root per scope the
// class declares a facet for, collecting diagnostics on the way.
package compile
