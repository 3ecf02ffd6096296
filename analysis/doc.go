// Package analysis drives the whole identification pipeline: for every
// selected site of a structure it enumerates periodic neighbors, builds the
// parameter grid of neighbor sets, measures each set against the reference
// catalog, and aggregates the results per site.
//
// Sites are independent given the immutable structure and the read-only
// catalog, so they run on parallel workers. Each site owns a write-once slot
// in the output; per-site failures are recorded, never fatal. Cancelling the
// context is the only global abort.
//
// Options are plain values with yaml tags so collaborators can ship option
// files; see OptionsFromYAML.
package analysis
