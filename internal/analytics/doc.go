// Package analytics derives campaign metrics from the two append-only logs.
//
// Aggregate and ExtractRows are pure functions over already-materialized
// slices: no I/O, no mutation of inputs, no errors. Degenerate inputs (empty
// logs, events with no matching message, campaigns with zero sends) resolve
// to zero-valued stats. The Collector wraps Aggregate with the reactive
// recompute loop used by the live dashboard.
package analytics
