// Package handler selects, orders and runs the transformations that fill
// output nodes from descriptors.
//
// Handlers are registered explicitly. A Registry is built once, orders its
// handlers by their before/after relations and is read-only afterwards, so
// one registry may serve any number of compilations.
package handler
