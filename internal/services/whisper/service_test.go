package whisper

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"voxpipe/internal/transcript"
)

func TestTranscribeBuildsExpectedCommand(t *testing.T) {
	svc := NewService(Config{
		Model:            "/models/ggml-base.bin",
		Language:         "German",
		MaxSegmentLength: 80,
		NoContext:        true,
	})

	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	jsonPath, err := svc.Transcribe(context.Background(), "audio.wav", "out/transcript.json")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if jsonPath != "out/transcript.json" {
		t.Errorf("jsonPath = %q, want out/transcript.json", jsonPath)
	}
	if gotName != DefaultBinary {
		t.Errorf("binary = %q, want %q", gotName, DefaultBinary)
	}
	want := []string{
		"-m", "/models/ggml-base.bin",
		"-f", "audio.wav",
		"-oj",
		"-of", "out/transcript",
		"-et", "2.4",
		"-lpt", "-1",
		"-l", "de",
		"-ml", "80",
		"-nc",
	}
	if !reflect.DeepEqual(gotArgs, want) {
		t.Errorf("args = %v, want %v", gotArgs, want)
	}
}

func TestTranscribeRequiresPaths(t *testing.T) {
	svc := NewService(Config{})
	if _, err := svc.Transcribe(context.Background(), "", "out"); err == nil {
		t.Error("missing audio path accepted")
	}
	if _, err := svc.Transcribe(context.Background(), "a.wav", ""); err == nil {
		t.Error("missing output path accepted")
	}
}

func TestParseSegmentsWhisperCpp(t *testing.T) {
	payload := `{
		"transcription": [
			{"offsets": {"from": 0, "to": 3500}, "text": " Hello there. "},
			{"offsets": {"from": 3500, "to": 5000}, "text": "   "},
			{"offsets": {"from": 5000, "to": 6250}, "text": "Bye."}
		]
	}`

	segments, err := ParseSegments([]byte(payload))
	if err != nil {
		t.Fatalf("ParseSegments() error = %v", err)
	}
	want := []transcript.Segment{
		{Start: 0, End: 3.5, Text: "Hello there."},
		{Start: 5, End: 6.25, Text: "Bye."},
	}
	if !reflect.DeepEqual(segments, want) {
		t.Errorf("segments = %+v, want %+v", segments, want)
	}
}

func TestParseSegmentsStandard(t *testing.T) {
	payload := `{
		"segments": [
			{"start": 0.0, "end": 2.4, "text": "First."},
			{"start": 2.4, "end": 4.0, "text": " Second. "}
		]
	}`

	segments, err := ParseSegments([]byte(payload))
	if err != nil {
		t.Fatalf("ParseSegments() error = %v", err)
	}
	want := []transcript.Segment{
		{Start: 0, End: 2.4, Text: "First."},
		{Start: 2.4, End: 4, Text: "Second."},
	}
	if !reflect.DeepEqual(segments, want) {
		t.Errorf("segments = %+v, want %+v", segments, want)
	}
}

func TestParseSegmentsUnknownShape(t *testing.T) {
	if _, err := ParseSegments([]byte(`{"foo": 1}`)); err == nil {
		t.Error("unknown payload shape accepted")
	}
	if _, err := ParseSegments([]byte(`not json`)); err == nil {
		t.Error("invalid JSON accepted")
	}
}

func TestLoadSegments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	content := `{"segments": [{"start": 1.0, "end": 2.0, "text": "hi"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	segments, err := LoadSegments(path)
	if err != nil {
		t.Fatalf("LoadSegments() error = %v", err)
	}
	if len(segments) != 1 || segments[0].Text != "hi" {
		t.Errorf("segments = %+v", segments)
	}
}
