// Package session holds the per-user conversational form state for character
// registration: which step of the guided flow the user is on, the accepted
// image reference, the chosen input mode and the attributes collected so far.
//
// The package is storage-agnostic: any backend that satisfies the Store
// interface can be plugged in. A concurrent in-memory implementation with
// configurable idle eviction ships out of the box. Sessions are not persisted
// across process restarts.
//
// Store.Get returns a mutable handle: updates made through the returned
// pointer are visible to subsequent lookups for the same user ID within the
// same process. Callers that need per-user serialization (the dispatcher
// does) must hold the user's lock around the whole read-modify cycle.
package session
