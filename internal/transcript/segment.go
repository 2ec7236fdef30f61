package transcript

// UnknownSpeaker marks a merged segment that no diarization turn overlaps.
// This is a normal outcome for silence or non-speech audio, not an error.
const UnknownSpeaker = "UNKNOWN"

// Segment is one timestamped unit of recognized speech text.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Turn attributes a time range of audio to one speaker identity.
type Turn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// MergedSegment is a transcript segment with its resolved speaker. Speaker
// holds UnknownSpeaker when no turn overlapped the segment. OriginalText is
// populated by correction and translation when they rewrite Text.
type MergedSegment struct {
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	Speaker      string  `json:"speaker"`
	Text         string  `json:"text"`
	OriginalText string  `json:"original_text,omitempty"`
}

// Document is the speaker-attributed transcript passed between pipeline
// stages. Speakers lists the distinct non-sentinel labels in first-seen
// order. The merge stage constructs it once; correction and translation
// return copies with rewritten text and their model fields set.
type Document struct {
	Speakers         []string        `json:"speakers"`
	Segments         []MergedSegment `json:"segments"`
	CorrectionModel  string          `json:"correction_model,omitempty"`
	TargetLanguage   string          `json:"target_language,omitempty"`
	TranslationModel string          `json:"translation_model,omitempty"`
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Speakers:         make([]string, len(d.Speakers)),
		Segments:         make([]MergedSegment, len(d.Segments)),
		CorrectionModel:  d.CorrectionModel,
		TargetLanguage:   d.TargetLanguage,
		TranslationModel: d.TranslationModel,
	}
	copy(out.Speakers, d.Speakers)
	copy(out.Segments, d.Segments)
	return out
}
