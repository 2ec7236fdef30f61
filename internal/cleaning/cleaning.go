// Package cleaning detects and removes whisper hallucination loops from
// transcript segment streams before they reach the merge stage.
package cleaning

import (
	"strings"

	"voxpipe/internal/transcript"
)

const (
	// DefaultSimilarityThreshold is the Jaccard similarity above which two
	// consecutive segments count as near-identical.
	DefaultSimilarityThreshold = 0.9
	// DefaultMaxConsecutiveSimilar is how many near-identical segments in a
	// row are tolerated before the rest of the run is dropped.
	DefaultMaxConsecutiveSimilar = 3
)

// RemoveRepeatedSegments drops segments that continue a run of near-identical
// text, the signature of a decoder hallucination loop. Empty-text segments
// are dropped outright. Returns the cleaned slice and how many segments were
// removed.
func RemoveRepeatedSegments(segments []transcript.Segment, threshold float64, maxConsecutive int) ([]transcript.Segment, int) {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	if maxConsecutive <= 0 {
		maxConsecutive = DefaultMaxConsecutiveSimilar
	}

	cleaned := make([]transcript.Segment, 0, len(segments))
	consecutive := 0
	lastText := ""
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if Jaccard(text, lastText) >= threshold {
			consecutive++
			if consecutive >= maxConsecutive {
				continue
			}
		} else {
			consecutive = 0
		}
		cleaned = append(cleaned, seg)
		lastText = text
	}
	return cleaned, len(segments) - len(cleaned)
}

// DetectRepetition reports a phrase of at least minLen characters that occurs
// at least minRepeats times in text. Whitespace is normalized first. Returns
// the phrase and whether one was found.
func DetectRepetition(text string, minLen, minRepeats int) (string, bool) {
	if minLen <= 0 {
		minLen = 20
	}
	if minRepeats <= 0 {
		minRepeats = 3
	}
	text = strings.Join(strings.Fields(text), " ")
	limit := len(text) / minRepeats
	for phraseLen := minLen; phraseLen < limit; phraseLen++ {
		for start := 0; start+phraseLen*minRepeats <= len(text); start++ {
			phrase := text[start : start+phraseLen]
			if strings.TrimSpace(phrase) == "" {
				continue
			}
			if countOverlapping(text, phrase) >= minRepeats {
				return phrase, true
			}
		}
	}
	return "", false
}

// TrimTrailingRepetition collapses a phrase repeated back-to-back at the end
// of text down to a single occurrence.
func TrimTrailingRepetition(text string, minLen int) string {
	if minLen <= 0 {
		minLen = 20
	}
	for phraseLen := len(text) / 2; phraseLen >= minLen; phraseLen-- {
		tail := text[len(text)-phraseLen:]
		trimmed := text
		for strings.HasSuffix(strings.TrimSuffix(trimmed, tail), tail) {
			trimmed = strings.TrimSuffix(trimmed, tail)
		}
		if trimmed != text {
			return trimmed
		}
	}
	return text
}

// Jaccard computes token-set similarity between two texts, ignoring case.
// Empty input on either side yields 0.
func Jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// countOverlapping counts occurrences of phrase allowing overlaps, matching
// a sliding one-byte advance.
func countOverlapping(text, phrase string) int {
	count := 0
	for pos := 0; ; pos++ {
		idx := strings.Index(text[pos:], phrase)
		if idx < 0 {
			return count
		}
		pos += idx
		count++
	}
}
