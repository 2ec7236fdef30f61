package merge

import (
	"sort"

	"voxpipe/internal/transcript"
)

// Run assigns a speaker to every transcript segment and returns the merged
// document. Inputs are validated first; a malformed record fails the merge
// before any output is produced. Out-of-order inputs are tolerated: both
// slices are stably sorted by start on private copies, never rejected and
// never mutated in place. The output carries exactly one merged segment per
// transcript segment, in start order.
func Run(segments []transcript.Segment, turns []transcript.Turn) (*transcript.Document, error) {
	if err := transcript.ValidateSegments(segments); err != nil {
		return nil, err
	}
	if err := transcript.ValidateTurns(turns); err != nil {
		return nil, err
	}

	segs := sortedSegments(segments)
	res := &resolver{turns: sortedTurns(turns)}

	doc := &transcript.Document{
		Speakers: []string{},
		Segments: make([]transcript.MergedSegment, 0, len(segs)),
	}
	seen := make(map[string]struct{})
	for _, seg := range segs {
		speaker, ok := res.resolve(seg)
		label := transcript.UnknownSpeaker
		if ok {
			label = speaker
			if _, dup := seen[speaker]; !dup {
				seen[speaker] = struct{}{}
				doc.Speakers = append(doc.Speakers, speaker)
			}
		}
		doc.Segments = append(doc.Segments, transcript.MergedSegment{
			Start:   seg.Start,
			End:     seg.End,
			Speaker: label,
			Text:    seg.Text,
		})
	}
	return doc, nil
}

// Consolidate joins consecutive merged segments spoken by the same speaker
// into single segments, extending the end time and joining texts with a
// space. The merge output itself stays one-to-one with the transcript;
// consolidation is an explicit, separate step for export.
func Consolidate(doc *transcript.Document) *transcript.Document {
	out := &transcript.Document{
		Speakers:         append([]string{}, doc.Speakers...),
		Segments:         []transcript.MergedSegment{},
		CorrectionModel:  doc.CorrectionModel,
		TargetLanguage:   doc.TargetLanguage,
		TranslationModel: doc.TranslationModel,
	}
	for _, seg := range doc.Segments {
		last := len(out.Segments) - 1
		if last >= 0 && out.Segments[last].Speaker == seg.Speaker {
			out.Segments[last].End = seg.End
			out.Segments[last].Text += " " + seg.Text
			continue
		}
		seg.OriginalText = ""
		out.Segments = append(out.Segments, seg)
	}
	return out
}

func sortedSegments(segments []transcript.Segment) []transcript.Segment {
	out := append([]transcript.Segment{}, segments...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func sortedTurns(turns []transcript.Turn) []transcript.Turn {
	out := append([]transcript.Turn{}, turns...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
