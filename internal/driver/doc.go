// Package driver orchestrates runs over many files: discovery, source
// transcoding, the parallel worker pool, the check-result cache, and
// apply-mode writes. All per-file logic lives in reconcile; the driver
// only schedules it.
package driver
