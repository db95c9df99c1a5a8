// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on the /debug/vars endpoint of the API server.
package metrics

import "expvar"

// Generation counters.
var (
	RunsTotal        = expvar.NewInt("verbgen_runs_total")
	RunsFailed       = expvar.NewInt("verbgen_runs_failed_total")
	VerbsGenerated   = expvar.NewInt("verbgen_verbs_generated_total")
	PatchesApplied   = expvar.NewInt("verbgen_patches_applied_total")
	CellsOverridden  = expvar.NewInt("verbgen_cells_overridden_total")
	ManifestsWritten = expvar.NewInt("verbgen_manifests_written_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }
