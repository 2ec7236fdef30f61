// Package transcript defines the shared segment model for the pipeline and
// the JSON document written at every stage boundary.
//
// A Segment is a time-bounded unit of recognized speech from the
// transcription engine; a Turn attributes a time range to one speaker
// identity from the diarization engine. The merge stage reconciles the two
// into a Document of speaker-attributed MergedSegments, which correction,
// translation, and export all consume and produce. Downstream stages rewrite
// segment text only; start, end, and speaker never change after the merge.
package transcript
