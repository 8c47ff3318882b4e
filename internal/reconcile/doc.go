// Package reconcile is the per-file pipeline: parse, check, format,
// verify. It is the only place the invariants are enforced at runtime;
// a breach aborts the file with an InvariantError instead of emitting
// possibly corrupted output.
package reconcile
