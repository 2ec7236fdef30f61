package diarize

import (
	"encoding/json"
	"fmt"
	"os"

	"voxpipe/internal/transcript"
)

// Result is the diarization runner's JSON output.
type Result struct {
	NumSpeakers int               `json:"num_speakers"`
	Speakers    []string          `json:"speakers"`
	Segments    []transcript.Turn `json:"segments"`
}

// LoadTurns parses a diarization JSON file into ordered speaker turns.
func LoadTurns(jsonPath string) (*Result, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read diarization: %w", err)
	}
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse diarization %s: %w", jsonPath, err)
	}
	return &result, nil
}
