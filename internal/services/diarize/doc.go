// Package diarize runs the pyannote speaker-diarization pipeline through a
// uvx-managed Python runner and loads its turn output into the shared
// segment model.
package diarize
