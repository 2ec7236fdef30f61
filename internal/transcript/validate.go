package transcript

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError identifies a malformed input record by kind and index.
type ValidationError struct {
	Kind   string // "transcript" or "diarization"
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s segment %d: %s", e.Kind, e.Index, e.Reason)
}

// ValidateSegments rejects malformed transcript segments. Records are never
// clamped or dropped; the first offending record fails the whole input.
func ValidateSegments(segments []Segment) error {
	for i, seg := range segments {
		if reason := checkRange(seg.Start, seg.End); reason != "" {
			return &ValidationError{Kind: "transcript", Index: i, Reason: reason}
		}
	}
	return nil
}

// ValidateTurns rejects malformed diarization turns, including turns with a
// missing speaker label.
func ValidateTurns(turns []Turn) error {
	for i, turn := range turns {
		if reason := checkRange(turn.Start, turn.End); reason != "" {
			return &ValidationError{Kind: "diarization", Index: i, Reason: reason}
		}
		if strings.TrimSpace(turn.Speaker) == "" {
			return &ValidationError{Kind: "diarization", Index: i, Reason: "missing speaker label"}
		}
	}
	return nil
}

func checkRange(start, end float64) string {
	if math.IsNaN(start) || math.IsNaN(end) {
		return "timestamp is NaN"
	}
	if math.IsInf(start, 0) || math.IsInf(end, 0) {
		return "timestamp is infinite"
	}
	if start > end {
		return fmt.Sprintf("start %.3f after end %.3f", start, end)
	}
	return ""
}
