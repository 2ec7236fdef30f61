// Package runstore persists pipeline run records in SQLite.
//
// Each `voxpipe pipeline run` gets a row tracking the source file, target
// language, current stage, and terminal status, so `voxpipe runs` can show
// history after the process exits.
package runstore
