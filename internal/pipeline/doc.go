// Package pipeline chains the processing stages from video to translated
// subtitles: audio extraction, transcription, diarization, speaker merge,
// LLM correction and translation, and SRT export.
//
// A flock guard keeps two runs out of the same output directory and every
// run is recorded in the run store when one is attached.
package pipeline
