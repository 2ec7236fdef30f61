// Package merge reconciles a transcription segment stream with a diarization
// turn stream into one speaker-attributed transcript.
//
// Each transcript segment is assigned the speaker whose turn overlaps it the
// longest. Ties go to the earlier-starting turn, then to input order, so the
// assignment is deterministic regardless of traversal. Segments that no turn
// overlaps keep the unknown-speaker sentinel. The merge is a pure computation
// over two in-memory slices; callers may invoke it concurrently on separate
// inputs without synchronization.
package merge
