// Package logging constructs slog loggers for the CLI and pipeline.
//
// Two formats are supported: a human console format with one line per
// record (colored when attached to a terminal) and standard slog JSON.
// Field name constants keep attribute keys consistent across stages.
package logging
