// Package target holds the in-memory output tree of the compiler.
//
// A Node has a name unique among its siblings, ordered string attributes
// (values are already rendered, e.g. "{Boolean}true" or "[a,b]"), ordered
// children and a back reference to its parent. Nodes are addressed with
// slash separated paths; quoted segments may contain slashes, "." is the
// node itself and ".." its parent.
//
// Every node carries the KindAttr marker attribute. A node is empty when it
// has no children and no other attribute.
package target
