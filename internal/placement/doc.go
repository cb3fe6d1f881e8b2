// Package placement distributes class members into container nodes.
//
// A Helper collects the members of a host class, orders them by rank and
// places them either straight into a container node or into named
// sections. Before members of one level are rendered the CollisionSolver
// looks for same-named members whose order or resource types conflict.
// RewriteMultiple turns a rendered field into a repeatable wrapper.
package placement
