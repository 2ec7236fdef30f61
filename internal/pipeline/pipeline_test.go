package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"voxpipe/internal/config"
	"voxpipe/internal/pipeline"
	"voxpipe/internal/runstore"
	"voxpipe/internal/services"
	"voxpipe/internal/services/ollama"
	"voxpipe/internal/transcript"
)

const fakeTranscriptJSON = `{
  "segments": [
    {"start": 0.0, "end": 2.0, "text": "hello there"},
    {"start": 2.0, "end": 4.0, "text": "general remarks"}
  ]
}`

const fakeDiarizationJSON = `{
  "num_speakers": 2,
  "speakers": ["SPEAKER_00", "SPEAKER_01"],
  "segments": [
    {"start": 0.0, "end": 2.0, "speaker": "SPEAKER_00"},
    {"start": 2.0, "end": 4.0, "speaker": "SPEAKER_01"}
  ]
}`

type fakeExtractor struct{ calls int }

func (f *fakeExtractor) ExtractAudio(_ context.Context, source, dest string, sampleRate, channels int) error {
	f.calls++
	return os.WriteFile(dest, []byte("wav"), 0o644)
}

type fakeTranscriber struct{ err error }

func (f *fakeTranscriber) Transcribe(_ context.Context, audioPath, outputBase string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := outputBase + ".json"
	if err := os.WriteFile(path, []byte(fakeTranscriptJSON), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type fakeDiarizer struct{ err error }

func (f *fakeDiarizer) Diarize(_ context.Context, audioPath, outputPath string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte(fakeDiarizationJSON), 0o644)
}

type fakeCorrector struct{}

func (fakeCorrector) CorrectDocument(_ context.Context, doc *transcript.Document, _ ollama.ProgressFunc) (*transcript.Document, error) {
	out := doc.Clone()
	out.CorrectionModel = "fake-corrector"
	return out, nil
}

type fakeTranslator struct{}

func (fakeTranslator) TranslateDocument(_ context.Context, doc *transcript.Document, targetLanguage string, _ ollama.ProgressFunc) (*transcript.Document, error) {
	out := doc.Clone()
	for i := range out.Segments {
		out.Segments[i].OriginalText = out.Segments[i].Text
		out.Segments[i].Text = "übersetzt: " + out.Segments[i].Text
	}
	out.TargetLanguage = targetLanguage
	out.TranslationModel = "fake-translator"
	return out, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Whisper.Binary = "whisper-cli"
	cfg.Whisper.Model = "/models/ggml-base.bin"
	cfg.Ollama.BaseURL = "http://localhost:11434"
	cfg.Ollama.CorrectionModel = "test"
	cfg.Ollama.TranslationModel = "test"
	cfg.Cleaning.Enabled = false
	return &cfg
}

func newTestPipeline(t *testing.T, store *runstore.Store, extra ...pipeline.Option) *pipeline.Pipeline {
	t.Helper()
	opts := []pipeline.Option{
		pipeline.WithExtractor(&fakeExtractor{}),
		pipeline.WithTranscriber(&fakeTranscriber{}),
		pipeline.WithDiarizer(&fakeDiarizer{}),
		pipeline.WithCorrector(fakeCorrector{}),
		pipeline.WithTranslator(fakeTranslator{}),
	}
	opts = append(opts, extra...)
	return pipeline.New(testConfig(t), nil, store, opts...)
}

func writeSource(t *testing.T, dir string) string {
	t.Helper()
	source := filepath.Join(dir, "talk.mp4")
	if err := os.WriteFile(source, []byte("video"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return source
}

func TestRunProducesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "out")
	source := writeSource(t, dir)

	p := newTestPipeline(t, nil)
	result, err := p.Run(context.Background(), source, outputDir, "German")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	wantFiles := []string{
		filepath.Join(outputDir, "talk_audio.wav"),
		filepath.Join(outputDir, "talk_transcript.json"),
		filepath.Join(outputDir, "talk_diarization.json"),
		filepath.Join(outputDir, "talk_merged.json"),
		filepath.Join(outputDir, "talk_corrected.json"),
		filepath.Join(outputDir, "talk_german.json"),
		filepath.Join(outputDir, "talk_german.srt"),
	}
	for _, path := range wantFiles {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected artifact %s: %v", path, err)
		}
	}
	if result.Artifacts.Subtitles != filepath.Join(outputDir, "talk_german.srt") {
		t.Errorf("unexpected subtitles artifact: %s", result.Artifacts.Subtitles)
	}

	doc := result.Document
	if doc == nil {
		t.Fatal("expected final document")
	}
	if doc.TargetLanguage != "German" || doc.TranslationModel != "fake-translator" {
		t.Errorf("unexpected document metadata: %+v", doc)
	}
	if len(doc.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(doc.Segments))
	}
	if doc.Segments[0].Speaker != "SPEAKER_00" || doc.Segments[1].Speaker != "SPEAKER_01" {
		t.Errorf("unexpected speakers: %+v", doc.Segments)
	}
	if !strings.HasPrefix(doc.Segments[0].Text, "übersetzt: ") {
		t.Errorf("expected translated text, got %q", doc.Segments[0].Text)
	}

	srt, err := os.ReadFile(result.Artifacts.Subtitles)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	if !strings.Contains(string(srt), "[SPEAKER_00]") {
		t.Errorf("expected speaker prefix in srt: %q", srt)
	}
}

func TestRunWithoutTargetLanguageSkipsTranslation(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "out")
	source := writeSource(t, dir)

	p := newTestPipeline(t, nil)
	result, err := p.Run(context.Background(), source, outputDir, "")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Document.TargetLanguage != "" || result.Document.TranslationModel != "" {
		t.Errorf("expected untranslated document, got %+v", result.Document)
	}
	if result.Artifacts.Subtitles != filepath.Join(outputDir, "talk.srt") {
		t.Errorf("unexpected subtitles artifact: %s", result.Artifacts.Subtitles)
	}
	if _, err := os.Stat(result.Artifacts.Subtitles); err != nil {
		t.Errorf("expected srt artifact: %v", err)
	}
}

func TestQuickStopsAfterTranscription(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "out")
	source := writeSource(t, dir)

	p := newTestPipeline(t, nil)
	result, err := p.Quick(context.Background(), source, outputDir)
	if err != nil {
		t.Fatalf("Quick returned error: %v", err)
	}
	if result.Document != nil {
		t.Errorf("expected no document in quick mode, got %+v", result.Document)
	}
	if _, err := os.Stat(result.Artifacts.Transcript); err != nil {
		t.Errorf("expected transcript artifact: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "talk_diarization.json")); err == nil {
		t.Error("quick mode must not diarize")
	}
	if result.Artifacts.Subtitles != "" {
		t.Errorf("expected no subtitles artifact in quick mode, got %q", result.Artifacts.Subtitles)
	}
}

func TestRunRecordsRunStore(t *testing.T) {
	dir := t.TempDir()
	store, err := runstore.Open(filepath.Join(dir, "voxpipe.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	source := writeSource(t, dir)
	p := newTestPipeline(t, store)
	result, err := p.Run(context.Background(), source, filepath.Join(dir, "out"), "German")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.RunID == "" {
		t.Fatal("expected run ID")
	}

	run, err := store.GetByID(context.Background(), result.RunID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if run.Status != runstore.StatusCompleted {
		t.Errorf("status = %q, want completed", run.Status)
	}
	if run.Stage != pipeline.StageExport {
		t.Errorf("stage = %q, want export", run.Stage)
	}
	if run.TargetLanguage != "German" {
		t.Errorf("target language = %q, want German", run.TargetLanguage)
	}
}

func TestStageFailureIsRecordedAndTagged(t *testing.T) {
	dir := t.TempDir()
	store, err := runstore.Open(filepath.Join(dir, "voxpipe.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	source := writeSource(t, dir)
	p := newTestPipeline(t, store,
		pipeline.WithDiarizer(&fakeDiarizer{err: errors.New("uvx exploded")}),
	)
	_, err = p.Run(context.Background(), source, filepath.Join(dir, "out"), "German")
	if err == nil {
		t.Fatal("expected error from failing diarizer")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Errorf("expected external tool marker, got %v", err)
	}
	if !strings.Contains(err.Error(), pipeline.StageDiarize) {
		t.Errorf("error should name the stage: %v", err)
	}

	runs, listErr := store.List(context.Background(), runstore.StatusFailed)
	if listErr != nil {
		t.Fatalf("List returned error: %v", listErr)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 failed run, got %d", len(runs))
	}
	if runs[0].Stage != pipeline.StageDiarize {
		t.Errorf("failed stage = %q, want diarize", runs[0].Stage)
	}
	if !strings.Contains(runs[0].ErrorMessage, "uvx exploded") {
		t.Errorf("error message not recorded: %q", runs[0].ErrorMessage)
	}
}

func TestLockedOutputDirIsRejected(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	source := writeSource(t, dir)

	guard := flock.New(filepath.Join(outputDir, ".voxpipe.lock"))
	locked, err := guard.TryLock()
	if err != nil || !locked {
		t.Fatalf("pre-lock failed: locked=%v err=%v", locked, err)
	}
	defer guard.Unlock()

	p := newTestPipeline(t, nil)
	_, err = p.Run(context.Background(), source, outputDir, "")
	if err == nil {
		t.Fatal("expected lock contention error")
	}
	if !errors.Is(err, services.ErrTransient) {
		t.Errorf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "in use by another run") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestMissingSourceFailsFast(t *testing.T) {
	p := newTestPipeline(t, nil)
	_, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"), t.TempDir(), "")
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("expected not found marker, got %v", err)
	}
}
