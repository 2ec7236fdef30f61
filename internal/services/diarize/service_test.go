package diarize

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDiarizeBuildsExpectedCommand(t *testing.T) {
	svc := NewService(Config{HFToken: "hf_secret", NumSpeakers: 2})

	var gotName string
	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotName = name
		gotArgs = args
		return nil
	})

	if err := svc.Diarize(context.Background(), "audio.wav", "turns.json"); err != nil {
		t.Fatalf("Diarize() error = %v", err)
	}
	if gotName != UVXCommand {
		t.Errorf("binary = %q, want %q", gotName, UVXCommand)
	}
	want := []string{
		"--from", RunnerPackage,
		RunnerEntryPoint,
		"audio.wav",
		"--model", DefaultModel,
		"--output", "turns.json",
		"--hf-token", "hf_secret",
		"--num-speakers", "2",
	}
	if !reflect.DeepEqual(gotArgs, want) {
		t.Errorf("args = %v, want %v", gotArgs, want)
	}
}

func TestDiarizeSpeakerBounds(t *testing.T) {
	svc := NewService(Config{MinSpeakers: 2, MaxSpeakers: 4})

	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = args
		return nil
	})

	if err := svc.Diarize(context.Background(), "a.wav", "out.json"); err != nil {
		t.Fatalf("Diarize() error = %v", err)
	}
	joined := reflect.DeepEqual(gotArgs[len(gotArgs)-4:], []string{"--min-speakers", "2", "--max-speakers", "4"})
	if !joined {
		t.Errorf("speaker bounds not passed: %v", gotArgs)
	}
}

func TestDiarizeNumSpeakersOverridesBounds(t *testing.T) {
	svc := NewService(Config{NumSpeakers: 3, MinSpeakers: 1, MaxSpeakers: 5})

	var gotArgs []string
	svc.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		gotArgs = args
		return nil
	})

	if err := svc.Diarize(context.Background(), "a.wav", "out.json"); err != nil {
		t.Fatalf("Diarize() error = %v", err)
	}
	for _, arg := range gotArgs {
		if arg == "--min-speakers" || arg == "--max-speakers" {
			t.Errorf("bounds passed alongside --num-speakers: %v", gotArgs)
		}
	}
}

func TestLoadTurns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.json")
	content := `{
		"num_speakers": 2,
		"speakers": ["SPEAKER_00", "SPEAKER_01"],
		"segments": [
			{"start": 0.0, "end": 3.0, "speaker": "SPEAKER_00"},
			{"start": 3.0, "end": 6.0, "speaker": "SPEAKER_01"}
		]
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := LoadTurns(path)
	if err != nil {
		t.Fatalf("LoadTurns() error = %v", err)
	}
	if result.NumSpeakers != 2 || len(result.Segments) != 2 {
		t.Errorf("result = %+v", result)
	}
	if result.Segments[1].Speaker != "SPEAKER_01" {
		t.Errorf("second turn = %+v", result.Segments[1])
	}
}

func TestLoadTurnsRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTurns(path); err == nil {
		t.Error("invalid JSON accepted")
	}
}
