// Package source models the input of the compiler: classes, their members and
// the descriptors attached to both.
//
// A class may have one parent class. Members of ancestors are inherited and
// keep their declaring class, so two members are the same member iff they
// share the declaring class and the getter-stripped name.
package source
