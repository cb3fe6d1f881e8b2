// Package analyze discovers classes in Go code.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to turn
// struct types into source classes:
//   - the first embedded struct becomes the parent class
//   - field descriptors come from `authorkit:"Kind(k=v);Kind2"` struct tags
//   - class and method descriptors come from //authorkit:Kind(...) lines
//     in doc comments
//   - struct-typed fields get the class of their element type as value class
package analyze
