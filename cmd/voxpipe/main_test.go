package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voxpipe/internal/runstore"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	dbPath     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	dbPath := filepath.Join(base, "voxpipe.db")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(
		"[paths]\nlog_dir = %q\ndatabase_path = %q\n\n[whisper]\nbinary = \"whisper-cli\"\nmodel = %q\n",
		filepath.Join(base, "logs"),
		dbPath,
		filepath.Join(base, "ggml-base.bin"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath, dbPath: dbPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCLIMergeAndExport(t *testing.T) {
	env := setupCLITestEnv(t)

	transcriptPath := filepath.Join(env.baseDir, "talk_transcript.json")
	diarizationPath := filepath.Join(env.baseDir, "talk_diarization.json")
	transcriptJSON := `{"segments":[
		{"start":0.0,"end":2.0,"text":"hello there"},
		{"start":2.0,"end":4.0,"text":"general remarks"}
	]}`
	diarizationJSON := `{"num_speakers":2,"speakers":["SPEAKER_00","SPEAKER_01"],"segments":[
		{"start":0.0,"end":2.0,"speaker":"SPEAKER_00"},
		{"start":2.0,"end":4.0,"speaker":"SPEAKER_01"}
	]}`
	if err := os.WriteFile(transcriptPath, []byte(transcriptJSON), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	if err := os.WriteFile(diarizationPath, []byte(diarizationJSON), 0o644); err != nil {
		t.Fatalf("write diarization: %v", err)
	}

	out, _, err := runCLI(t, []string{"merge", transcriptPath, diarizationPath}, env.configPath)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !strings.Contains(out, "Segments: 2, speakers: 2") {
		t.Fatalf("unexpected merge output: %q", out)
	}

	mergedPath := filepath.Join(env.baseDir, "talk_merged.json")
	if _, err := os.Stat(mergedPath); err != nil {
		t.Fatalf("expected merged document: %v", err)
	}

	out, _, err = runCLI(t, []string{"export", mergedPath}, env.configPath)
	if err != nil {
		t.Fatalf("export srt: %v", err)
	}
	if !strings.Contains(out, "Wrote 2 cues") {
		t.Fatalf("unexpected export output: %q", out)
	}
	srt, err := os.ReadFile(filepath.Join(env.baseDir, "talk_merged.srt"))
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	if !strings.Contains(string(srt), "[SPEAKER_00] hello there") {
		t.Fatalf("unexpected srt content: %q", srt)
	}

	_, _, err = runCLI(t, []string{"export", mergedPath, "--format", "vtt", "--no-speaker"}, env.configPath)
	if err != nil {
		t.Fatalf("export vtt: %v", err)
	}
	vtt, err := os.ReadFile(filepath.Join(env.baseDir, "talk_merged.vtt"))
	if err != nil {
		t.Fatalf("read vtt: %v", err)
	}
	if !strings.HasPrefix(string(vtt), "WEBVTT") {
		t.Fatalf("expected WEBVTT header: %q", vtt)
	}
	if strings.Contains(string(vtt), "SPEAKER_00") {
		t.Fatalf("expected speaker labels omitted: %q", vtt)
	}

	_, _, err = runCLI(t, []string{"export", mergedPath, "--format", "ass"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestCLIConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected init output: %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[whisper]") {
		t.Fatalf("sample missing whisper section: %q", data)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already-exists error, got %v", err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestCLIConfigShowMasksToken(t *testing.T) {
	env := setupCLITestEnv(t)
	content := fmt.Sprintf(
		"[paths]\nlog_dir = %q\ndatabase_path = %q\n\n[diarization]\nhf_token = \"hf_secret_value\"\n",
		filepath.Join(env.baseDir, "logs"),
		env.dbPath,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "hf_secret_value") {
		t.Fatalf("token leaked in output: %q", out)
	}
	if !strings.Contains(out, "(set)") {
		t.Fatalf("expected masked token marker: %q", out)
	}
	if !strings.Contains(out, "[ollama]") {
		t.Fatalf("expected normalized sections in output: %q", out)
	}
}

func TestCLIConfigPath(t *testing.T) {
	out, _, err := runCLI(t, []string{"config", "path"}, "")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(out, "config.toml") {
		t.Fatalf("unexpected config path output: %q", out)
	}
}

func TestCLIRuns(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs (empty): %v", err)
	}
	if !strings.Contains(out, "No runs recorded") {
		t.Fatalf("expected empty message: %q", out)
	}

	store, err := runstore.Open(env.dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	run, err := store.Begin(ctx, filepath.Join(env.baseDir, "lecture.mp4"), env.baseDir, "German")
	if err != nil {
		t.Fatalf("begin run: %v", err)
	}
	if err := store.Complete(ctx, run.ID); err != nil {
		t.Fatalf("complete run: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	out, _, err = runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if !strings.Contains(out, "lecture.mp4") || !strings.Contains(out, "completed") {
		t.Fatalf("unexpected runs output: %q", out)
	}

	out, _, err = runCLI(t, []string{"runs", "--status", "failed"}, env.configPath)
	if err != nil {
		t.Fatalf("runs --status failed: %v", err)
	}
	if !strings.Contains(out, "No runs recorded") {
		t.Fatalf("expected no failed runs: %q", out)
	}

	_, _, err = runCLI(t, []string{"runs", "--status", "bogus"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "unknown status") {
		t.Fatalf("expected unknown status error, got %v", err)
	}
}

func TestCLIVersion(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "voxpipe ") {
		t.Fatalf("unexpected version output: %q", out)
	}
}

func TestCLIExtractRejectsMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"extract", filepath.Join(env.baseDir, "missing.mp4")}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}
