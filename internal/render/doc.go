// Package render dumps finished trees as YAML or JSON. Attributes come
// first in insertion order, then children in order.
package render
