package merge

import "voxpipe/internal/transcript"

// overlapDuration returns how long seg and turn cover the same time.
// Exactly adjacent ranges (seg.End == turn.Start) overlap for zero seconds,
// which never wins a speaker assignment.
func overlapDuration(seg transcript.Segment, turn transcript.Turn) float64 {
	return max(0, min(seg.End, turn.End)-max(seg.Start, turn.Start))
}

// resolveSpeaker scans every turn and returns the speaker with the strictly
// greatest overlap against seg. With turns stably sorted by start, the strict
// comparison makes ties fall to the earlier-starting turn and, for equal
// starts, to the turn seen first in the input. ok is false when no turn
// overlaps seg at all.
func resolveSpeaker(seg transcript.Segment, turns []transcript.Turn) (speaker string, ok bool) {
	var best float64
	for _, turn := range turns {
		if d := overlapDuration(seg, turn); d > best {
			best = d
			speaker = turn.Speaker
			ok = true
		}
	}
	return speaker, ok
}

// resolver is a sliding-window variant of resolveSpeaker for callers that
// advance through segments in start order over start-sorted turns. It skips
// turns that ended before the current segment began, which later segments can
// never overlap either, and stops at the first turn starting at or after the
// segment end. Results match resolveSpeaker exactly.
type resolver struct {
	turns []transcript.Turn
	low   int
}

func (r *resolver) resolve(seg transcript.Segment) (speaker string, ok bool) {
	for r.low < len(r.turns) && r.turns[r.low].End <= seg.Start {
		r.low++
	}
	var best float64
	for i := r.low; i < len(r.turns); i++ {
		turn := r.turns[i]
		if turn.Start >= seg.End {
			break
		}
		if d := overlapDuration(seg, turn); d > best {
			best = d
			speaker = turn.Speaker
			ok = true
		}
	}
	return speaker, ok
}
