package merge

import (
	"fmt"
	"math/rand"
	"testing"

	"voxpipe/internal/transcript"
)

func TestOverlapDuration(t *testing.T) {
	tests := []struct {
		name string
		seg  transcript.Segment
		turn transcript.Turn
		want float64
	}{
		{"contained", transcript.Segment{Start: 1, End: 2}, transcript.Turn{Start: 0, End: 3}, 1},
		{"partial", transcript.Segment{Start: 0, End: 3.5}, transcript.Turn{Start: 3, End: 6}, 0.5},
		{"disjoint", transcript.Segment{Start: 0, End: 1}, transcript.Turn{Start: 2, End: 3}, 0},
		{"adjacent", transcript.Segment{Start: 0, End: 2}, transcript.Turn{Start: 2, End: 4}, 0},
		{"zero length segment", transcript.Segment{Start: 1, End: 1}, transcript.Turn{Start: 0, End: 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlapDuration(tt.seg, tt.turn); got != tt.want {
				t.Errorf("overlapDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveSpeakerTieBreaks(t *testing.T) {
	seg := transcript.Segment{Start: 0, End: 4}
	t.Run("earlier start wins", func(t *testing.T) {
		turns := []transcript.Turn{
			{Start: 0, End: 2, Speaker: "A"},
			{Start: 2, End: 4, Speaker: "B"},
		}
		speaker, ok := resolveSpeaker(seg, turns)
		if !ok || speaker != "A" {
			t.Errorf("resolveSpeaker() = %q, %v, want A, true", speaker, ok)
		}
	})
	t.Run("equal start falls to input order", func(t *testing.T) {
		turns := []transcript.Turn{
			{Start: 0, End: 2, Speaker: "X"},
			{Start: 0, End: 2, Speaker: "Y"},
		}
		speaker, ok := resolveSpeaker(seg, turns)
		if !ok || speaker != "X" {
			t.Errorf("resolveSpeaker() = %q, %v, want X, true", speaker, ok)
		}
	})
	t.Run("no overlap at all", func(t *testing.T) {
		turns := []transcript.Turn{{Start: 10, End: 12, Speaker: "A"}}
		if speaker, ok := resolveSpeaker(seg, turns); ok {
			t.Errorf("resolveSpeaker() = %q, true, want no speaker", speaker)
		}
	})
}

// The sliding-window resolver is an optimization over the full scan; both
// must agree on every input. Randomized segment streams exercise gaps,
// adjacency, ties, and interleaved speakers.
func TestResolverMatchesFullScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		segments := randomSegments(rng, rng.Intn(30))
		turns := randomTurns(rng, rng.Intn(30))

		res := &resolver{turns: sortedTurns(turns)}
		for i, seg := range sortedSegments(segments) {
			wantSpeaker, wantOK := resolveSpeaker(seg, res.turns)
			gotSpeaker, gotOK := res.resolve(seg)
			if gotSpeaker != wantSpeaker || gotOK != wantOK {
				t.Fatalf("trial %d segment %d [%.2f,%.2f]: window = (%q,%v), scan = (%q,%v)",
					trial, i, seg.Start, seg.End, gotSpeaker, gotOK, wantSpeaker, wantOK)
			}
		}
	}
}

func randomSegments(rng *rand.Rand, n int) []transcript.Segment {
	segments := make([]transcript.Segment, 0, n)
	cursor := 0.0
	for i := 0; i < n; i++ {
		// Occasional gaps and zero-length segments.
		cursor += float64(rng.Intn(4)) * 0.5
		length := float64(rng.Intn(5)) * 0.5
		segments = append(segments, transcript.Segment{
			Start: cursor,
			End:   cursor + length,
			Text:  fmt.Sprintf("seg%d", i),
		})
		cursor += length
	}
	return segments
}

func randomTurns(rng *rand.Rand, n int) []transcript.Turn {
	speakers := []string{"SPEAKER_00", "SPEAKER_01", "SPEAKER_02"}
	turns := make([]transcript.Turn, 0, n)
	for i := 0; i < n; i++ {
		start := float64(rng.Intn(60)) * 0.5
		length := float64(rng.Intn(6)) * 0.5
		turns = append(turns, transcript.Turn{
			Start:   start,
			End:     start + length,
			Speaker: speakers[rng.Intn(len(speakers))],
		})
	}
	return turns
}
