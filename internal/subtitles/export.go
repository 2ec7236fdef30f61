package subtitles

import (
	"fmt"
	"io"
	"os"
	"strings"

	"voxpipe/internal/transcript"
)

// Options controls cue rendering for both formats.
type Options struct {
	// IncludeSpeaker prefixes each cue's text with the segment's speaker
	// label ("[SPEAKER_00] ..." in SRT, "<v SPEAKER_00>..." in VTT).
	IncludeSpeaker bool
}

// WriteSRT renders the document as SubRip cues.
func WriteSRT(w io.Writer, doc *transcript.Document, opts Options) error {
	for i, seg := range doc.Segments {
		text := strings.TrimSpace(seg.Text)
		if opts.IncludeSpeaker && seg.Speaker != "" {
			text = fmt.Sprintf("[%s] %s", seg.Speaker, text)
		}
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n", i+1, FormatSRT(seg.Start), FormatSRT(seg.End), text); err != nil {
			return fmt.Errorf("write srt cue %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteVTT renders the document as WebVTT cues.
func WriteVTT(w io.Writer, doc *transcript.Document, opts Options) error {
	if _, err := io.WriteString(w, "WEBVTT\n\n"); err != nil {
		return fmt.Errorf("write vtt header: %w", err)
	}
	for i, seg := range doc.Segments {
		text := strings.TrimSpace(seg.Text)
		if opts.IncludeSpeaker && seg.Speaker != "" {
			text = fmt.Sprintf("<v %s>%s", seg.Speaker, text)
		}
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n", i+1, FormatVTT(seg.Start), FormatVTT(seg.End), text); err != nil {
			return fmt.Errorf("write vtt cue %d: %w", i+1, err)
		}
	}
	return nil
}

// ExportSRT writes the document to path in SRT format.
func ExportSRT(path string, doc *transcript.Document, opts Options) error {
	return exportFile(path, doc, opts, WriteSRT)
}

// ExportVTT writes the document to path in WebVTT format.
func ExportVTT(path string, doc *transcript.Document, opts Options) error {
	return exportFile(path, doc, opts, WriteVTT)
}

func exportFile(path string, doc *transcript.Document, opts Options, render func(io.Writer, *transcript.Document, Options) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create subtitle file: %w", err)
	}
	if err := render(file, doc, opts); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close subtitle file: %w", err)
	}
	return nil
}
