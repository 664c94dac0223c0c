// Package charstats validates character attribute input: per-field numeric
// range checks, the character name length cap, and the aggregate stat budget.
// All checks are pure and deterministic; the budget check intentionally runs
// only once every numeric field has been collected, never incrementally.
package charstats
