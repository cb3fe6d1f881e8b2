// Package kinds declares the descriptor kinds the compiler understands and
// the tables relating them to output scopes and widget resource types.
//
// Each kind is a plain struct; see package meta for the field tag grammar.
package kinds
