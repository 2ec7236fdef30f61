package diarize

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

const (
	// UVXCommand launches the Python diarization runner without a managed
	// virtualenv.
	UVXCommand = "uvx"
	// RunnerPackage is the uvx package providing the diarization entry point.
	RunnerPackage = "pyannote-pipeline-cli"
	// RunnerEntryPoint is the console script inside RunnerPackage.
	RunnerEntryPoint = "pyannote-diarize"
	// DefaultModel is the hosted diarization pipeline checkpoint.
	DefaultModel = "pyannote/speaker-diarization-3.1"
)

// Config captures the runtime settings for diarization runs.
type Config struct {
	Model       string
	HFToken     string
	NumSpeakers int
	MinSpeakers int
	MaxSpeakers int
}

// Service shells out to the diarization runner.
type Service struct {
	cfg    Config
	runner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a diarization service with the given configuration.
func NewService(cfg Config) *Service {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.runner = runner
}

// Model returns the configured pipeline checkpoint for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Diarize partitions the audio by speaker and writes the turn JSON to
// outputPath. Diarization commonly runs for minutes on long recordings; the
// context is the only way to abort early.
func (s *Service) Diarize(ctx context.Context, audioPath, outputPath string) error {
	if audioPath == "" {
		return fmt.Errorf("diarize: audio path required")
	}
	if outputPath == "" {
		return fmt.Errorf("diarize: output path required")
	}
	args := s.buildArgs(audioPath, outputPath)
	if err := s.run(ctx, UVXCommand, args...); err != nil {
		return fmt.Errorf("diarization runner: %w", err)
	}
	return nil
}

func (s *Service) buildArgs(audioPath, outputPath string) []string {
	args := []string{
		"--from", RunnerPackage,
		RunnerEntryPoint,
		audioPath,
		"--model", s.cfg.Model,
		"--output", outputPath,
	}
	if s.cfg.HFToken != "" {
		args = append(args, "--hf-token", s.cfg.HFToken)
	}
	if s.cfg.NumSpeakers > 0 {
		args = append(args, "--num-speakers", strconv.Itoa(s.cfg.NumSpeakers))
	} else {
		if s.cfg.MinSpeakers > 0 {
			args = append(args, "--min-speakers", strconv.Itoa(s.cfg.MinSpeakers))
		}
		if s.cfg.MaxSpeakers > 0 {
			args = append(args, "--max-speakers", strconv.Itoa(s.cfg.MaxSpeakers))
		}
	}
	return args
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.runner != nil {
		return s.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
