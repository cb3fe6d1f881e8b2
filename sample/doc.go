// Package sample holds tagged component types used by the analyzer and the
// end-to-end tests.
package sample
