package ollama

import (
	"context"
	"fmt"
	"strings"

	"voxpipe/internal/transcript"
)

// ProgressFunc reports per-segment progress during document rewrites.
type ProgressFunc func(done, total int)

// CorrectDocument runs correction over every segment of the document and
// returns a new document. Timing and speaker attribution are never changed;
// segments whose text changed keep the original in OriginalText.
func (c *Client) CorrectDocument(ctx context.Context, doc *transcript.Document, progress ProgressFunc) (*transcript.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("ollama correct: document required")
	}
	out := doc.Clone()
	total := len(out.Segments)
	for i := range out.Segments {
		seg := &out.Segments[i]
		if strings.TrimSpace(seg.Text) != "" {
			corrected, err := c.Correct(ctx, seg.Text)
			if err != nil {
				return nil, fmt.Errorf("ollama correct: segment %d: %w", i, err)
			}
			if corrected != seg.Text {
				seg.OriginalText = seg.Text
				seg.Text = corrected
			}
		}
		if progress != nil {
			progress(i+1, total)
		}
	}
	out.CorrectionModel = c.cfg.Model
	return out, nil
}

// TranslateDocument translates every segment into the target language and
// returns a new document. Every non-empty segment records its source text in
// OriginalText, unlike correction which only records it when the text changed.
func (c *Client) TranslateDocument(ctx context.Context, doc *transcript.Document, targetLanguage string, progress ProgressFunc) (*transcript.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("ollama translate: document required")
	}
	if strings.TrimSpace(targetLanguage) == "" {
		return nil, fmt.Errorf("ollama translate: target language required")
	}
	out := doc.Clone()
	total := len(out.Segments)
	for i := range out.Segments {
		seg := &out.Segments[i]
		if strings.TrimSpace(seg.Text) != "" {
			translated, err := c.Translate(ctx, seg.Text, targetLanguage)
			if err != nil {
				return nil, fmt.Errorf("ollama translate: segment %d: %w", i, err)
			}
			seg.OriginalText = seg.Text
			seg.Text = translated
		}
		if progress != nil {
			progress(i+1, total)
		}
	}
	out.TargetLanguage = targetLanguage
	out.TranslationModel = c.cfg.Model
	return out, nil
}
