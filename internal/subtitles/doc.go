// Package subtitles renders merged transcript documents into SRT and WebVTT
// subtitle files, one cue per segment, optionally prefixed with the speaker
// label. It also owns the timestamp format helpers shared by both formats.
package subtitles
