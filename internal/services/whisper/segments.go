package whisper

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"voxpipe/internal/transcript"
)

// whisperCppPayload is the whisper.cpp JSON shape: millisecond offsets under
// a "transcription" key.
type whisperCppPayload struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// standardPayload is the standard whisper JSON shape: float seconds under a
// "segments" key.
type standardPayload struct {
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// LoadSegments parses a whisper transcript JSON file into ordered segments.
// Segments with empty text are skipped; text is whitespace-trimmed.
func LoadSegments(jsonPath string) ([]transcript.Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	return ParseSegments(data)
}

// ParseSegments decodes whisper JSON from memory, accepting both supported
// payload shapes.
func ParseSegments(data []byte) ([]transcript.Segment, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}

	if _, ok := probe["transcription"]; ok {
		var payload whisperCppPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("parse whisper.cpp transcript: %w", err)
		}
		segments := make([]transcript.Segment, 0, len(payload.Transcription))
		for _, seg := range payload.Transcription {
			text := strings.TrimSpace(seg.Text)
			if text == "" {
				continue
			}
			segments = append(segments, transcript.Segment{
				Start: float64(seg.Offsets.From) / 1000.0,
				End:   float64(seg.Offsets.To) / 1000.0,
				Text:  text,
			})
		}
		return segments, nil
	}

	if _, ok := probe["segments"]; ok {
		var payload standardPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("parse whisper transcript: %w", err)
		}
		segments := make([]transcript.Segment, 0, len(payload.Segments))
		for _, seg := range payload.Segments {
			text := strings.TrimSpace(seg.Text)
			if text == "" {
				continue
			}
			segments = append(segments, transcript.Segment{Start: seg.Start, End: seg.End, Text: text})
		}
		return segments, nil
	}

	return nil, fmt.Errorf("parse transcript: no transcription or segments key")
}
