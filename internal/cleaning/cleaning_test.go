package cleaning

import (
	"strings"
	"testing"

	"voxpipe/internal/transcript"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "the quick brown fox", "the quick brown fox", 1},
		{"disjoint", "apple banana", "cat dog", 0},
		{"empty a", "", "hello", 0},
		{"empty b", "hello", "", 0},
		{"case insensitive", "Hello World", "hello world", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); got != tt.want {
				t.Errorf("Jaccard(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestJaccardPartial(t *testing.T) {
	got := Jaccard("the quick brown fox", "the slow brown cat")
	if got <= 0 || got >= 1 {
		t.Errorf("Jaccard(partial) = %v, want between 0 and 1", got)
	}
}

func TestRemoveRepeatedSegments(t *testing.T) {
	loop := "thank you for watching thank you"
	segments := []transcript.Segment{
		{Start: 0, End: 1, Text: "real speech here"},
		{Start: 1, End: 2, Text: loop},
		{Start: 2, End: 3, Text: loop},
		{Start: 3, End: 4, Text: loop},
		{Start: 4, End: 5, Text: loop},
		{Start: 5, End: 6, Text: loop},
		{Start: 6, End: 7, Text: "back to normal content"},
	}

	// First loop occurrence plus two tolerated repeats survive; the rest of
	// the run is dropped.
	cleaned, removed := RemoveRepeatedSegments(segments, 0.9, 3)
	if removed != 2 {
		t.Fatalf("removed = %d, want 2 (cleaned: %+v)", removed, cleaned)
	}
	if cleaned[len(cleaned)-1].Text != "back to normal content" {
		t.Errorf("trailing real segment dropped: %+v", cleaned)
	}
}

func TestRemoveRepeatedSegmentsDropsEmpty(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 0, End: 1, Text: "  "},
		{Start: 1, End: 2, Text: "speech"},
	}

	cleaned, removed := RemoveRepeatedSegments(segments, 0, 0)
	if len(cleaned) != 1 || removed != 1 {
		t.Errorf("got %d segments (removed %d), want 1 segment removed", len(cleaned), removed)
	}
}

func TestRemoveRepeatedSegmentsKeepsVariedText(t *testing.T) {
	segments := []transcript.Segment{
		{Start: 0, End: 1, Text: "first sentence spoken"},
		{Start: 1, End: 2, Text: "completely different words"},
		{Start: 2, End: 3, Text: "yet another unique phrase"},
	}

	cleaned, removed := RemoveRepeatedSegments(segments, 0.9, 3)
	if removed != 0 || len(cleaned) != 3 {
		t.Errorf("varied text was modified: removed %d of %d", removed, len(segments))
	}
}

func TestDetectRepetition(t *testing.T) {
	phrase := "this exact phrase repeats again and again "
	text := "intro words " + strings.Repeat(phrase, 4)

	found, ok := DetectRepetition(text, 20, 3)
	if !ok {
		t.Fatal("DetectRepetition() found nothing in a looping text")
	}
	if len(found) < 20 {
		t.Errorf("reported phrase %q shorter than minimum", found)
	}
}

func TestDetectRepetitionCleanText(t *testing.T) {
	text := "a perfectly ordinary sentence with no looping structure at all"
	if phrase, ok := DetectRepetition(text, 20, 3); ok {
		t.Errorf("DetectRepetition() = %q on clean text", phrase)
	}
}

func TestTrimTrailingRepetition(t *testing.T) {
	phrase := "and that is the end of the story "
	text := "something happened " + strings.Repeat(phrase, 3)

	got := TrimTrailingRepetition(text, 20)
	if strings.Count(got, strings.TrimSpace(phrase)) != 1 {
		t.Errorf("TrimTrailingRepetition() = %q, want single trailing phrase", got)
	}

	clean := "no repeats in this sentence whatsoever"
	if got := TrimTrailingRepetition(clean, 20); got != clean {
		t.Errorf("TrimTrailingRepetition() altered clean text: %q", got)
	}
}
