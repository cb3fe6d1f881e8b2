// Package diagnostic provides the shared sink through which the compiler
// reports problems without stopping, and the typed errors it reports.
//
// Key capabilities:
//   - Sink contract (Handle) threaded through every fail-soft operation
//   - Lookup, type-mismatch and bounds errors raised by descriptors
//   - Layout errors raised by placement (recursion, collisions, missing sections)
//   - A thread-safe, append-only Diagnostics collector
package diagnostic
